package recommend

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "lowercases and splits on punctuation",
			text: "Self-heating MUG, keeps coffee warm!",
			want: []string{"self", "heating", "mug", "coffee", "warm"},
		},
		{
			name: "drops stop words and single characters",
			text: "a drone with the camera",
			want: []string{"drone", "camera"},
		},
		{
			name: "keeps digits",
			text: "tracks PM2 and CO2 levels",
			want: []string{"tracks", "pm2", "co2", "levels"},
		},
		{
			name: "empty text",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("tokenize(%q) = %v, want %v", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestVectorize(t *testing.T) {
	t.Run("vectors are L2 normalized", func(t *testing.T) {
		vectors := Vectorize([]Doc{
			{ID: "a", Text: "drone camera flight"},
			{ID: "b", Text: "mug coffee"},
		})

		for i, v := range vectors {
			var norm float64
			for _, w := range v {
				norm += w * w
			}
			if math.Abs(math.Sqrt(norm)-1.0) > 0.01 {
				t.Errorf("vector %d norm = %v, want 1.0", i, math.Sqrt(norm))
			}
		}
	})

	t.Run("empty description yields zero vector", func(t *testing.T) {
		vectors := Vectorize([]Doc{
			{ID: "a", Text: "drone camera"},
			{ID: "b", Text: ""},
		})

		if len(vectors[1]) != 0 {
			t.Errorf("expected empty vector for empty text, got %v", vectors[1])
		}
	})

	t.Run("stop-word-only description yields zero vector", func(t *testing.T) {
		vectors := Vectorize([]Doc{
			{ID: "a", Text: "drone"},
			{ID: "b", Text: "the and with of"},
		})

		if len(vectors[1]) != 0 {
			t.Errorf("expected empty vector, got %v", vectors[1])
		}
	})

	t.Run("rare terms outweigh common terms", func(t *testing.T) {
		vectors := Vectorize([]Doc{
			{ID: "a", Text: "sensor drone"},
			{ID: "b", Text: "sensor mug"},
			{ID: "c", Text: "sensor headband"},
		})

		// "sensor" appears in every doc, "drone" only in the first.
		if vectors[0]["drone"] <= vectors[0]["sensor"] {
			t.Errorf("rare term weight %v should exceed common term weight %v",
				vectors[0]["drone"], vectors[0]["sensor"])
		}
	})
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b Vector
		want float64
	}{
		{
			name: "identical vectors",
			a:    Vector{"x": 0.6, "y": 0.8},
			b:    Vector{"x": 0.6, "y": 0.8},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    Vector{"x": 1},
			b:    Vector{"y": 1},
			want: 0.0,
		},
		{
			name: "zero vector",
			a:    Vector{},
			b:    Vector{"x": 1},
			want: 0.0,
		},
		{
			name: "both zero",
			a:    Vector{},
			b:    Vector{},
			want: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Cosine = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1.001 {
				t.Errorf("Cosine = %v, outside [0, 1]", got)
			}
		})
	}
}

func TestRank(t *testing.T) {
	corpus := []Doc{
		{ID: "drone", Text: "foldable drone with HD camera and gesture control"},
		{ID: "mug", Text: "self heating mug keeps coffee at the perfect temperature"},
		{ID: "headband", Text: "bluetooth sleep mask with thin speakers"},
		{ID: "camera-drone", Text: "racing drone with camera mount"},
	}

	t.Run("shared vocabulary ranks first", func(t *testing.T) {
		ids, ok := Rank(corpus, "drone", 3)
		if !ok {
			t.Fatal("expected target to be found")
		}
		if len(ids) != 3 {
			t.Fatalf("expected 3 results, got %d", len(ids))
		}
		if ids[0] != "camera-drone" {
			t.Errorf("expected camera-drone first, got %q", ids[0])
		}
	})

	t.Run("never includes the target", func(t *testing.T) {
		ids, ok := Rank(corpus, "mug", 10)
		if !ok {
			t.Fatal("expected target to be found")
		}
		for _, id := range ids {
			if id == "mug" {
				t.Error("result includes the query document")
			}
		}
	})

	t.Run("caps results at corpus size minus one", func(t *testing.T) {
		ids, ok := Rank(corpus, "drone", 10)
		if !ok {
			t.Fatal("expected target to be found")
		}
		if len(ids) != len(corpus)-1 {
			t.Errorf("expected %d results, got %d", len(corpus)-1, len(ids))
		}
	})

	t.Run("unknown target reports not found", func(t *testing.T) {
		ids, ok := Rank(corpus, "nope", 3)
		if ok {
			t.Error("expected ok=false for unknown target")
		}
		if ids != nil {
			t.Errorf("expected nil ids, got %v", ids)
		}
	})

	t.Run("zero-vector query still returns full-length result", func(t *testing.T) {
		docs := append([]Doc{{ID: "blank", Text: ""}}, corpus...)
		ids, ok := Rank(docs, "blank", 4)
		if !ok {
			t.Fatal("expected target to be found")
		}
		if len(ids) != 4 {
			t.Errorf("expected 4 results, got %d", len(ids))
		}
	})

	t.Run("ties keep corpus order", func(t *testing.T) {
		docs := []Doc{
			{ID: "q", Text: "unique"},
			{ID: "first", Text: "alpha"},
			{ID: "second", Text: "beta"},
		}
		// Both candidates score 0 against the query; the stable sort
		// must keep their storage order.
		ids, ok := Rank(docs, "q", 2)
		if !ok {
			t.Fatal("expected target to be found")
		}
		if ids[0] != "first" || ids[1] != "second" {
			t.Errorf("expected corpus order among ties, got %v", ids)
		}
	})
}
