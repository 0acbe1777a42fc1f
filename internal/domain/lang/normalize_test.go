package lang

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "strips fillers",
			in:   "eh bueno um yo creo que sí",
			want: "bueno yo creo que sí",
		},
		{
			name: "fillers are case insensitive",
			in:   "EH hola UM mundo",
			want: "hola mundo",
		},
		{
			name: "keeps accents and inverted punctuation",
			in:   "¿Cómo estás? ¡Bien!",
			want: "¿Cómo estás? ¡Bien!",
		},
		{
			name: "strips non-whitelisted symbols",
			in:   "precio = $100 €50 @canal #señal",
			want: "precio 100 50 canal señal",
		},
		{
			name: "collapses whitespace",
			in:   "  hola \t  mundo  \n cruel ",
			want: "hola mundo cruel",
		},
		{
			name: "filler only becomes empty",
			in:   "eh ehh umm mmm",
			want: "",
		},
		{
			name: "does not touch filler substrings inside words",
			in:   "deshumidificador hmm eherencia",
			want: "deshumidificador eherencia",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	in := "eh ¿qué tal? $$$ um"
	first := Normalize(in)
	for i := 0; i < 5; i++ {
		if got := Normalize(in); got != first {
			t.Fatalf("Normalize is not deterministic: %q vs %q", got, first)
		}
	}
}
