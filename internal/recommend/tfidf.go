// Package recommend implements content-similarity ranking over product
// descriptions. It builds a TF-IDF term-vector space over the whole corpus
// on every call and ranks candidates by cosine similarity, so results
// always reflect the latest stored text.
package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Doc is one corpus entry: an ID and its free text.
type Doc struct {
	ID   string
	Text string
}

// Vector is a sparse term-weight vector.
type Vector map[string]float64

// tokenize lowercases text and splits it into alphanumeric runs, dropping
// single-character tokens and stop words.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() >= 2 {
			tok := b.String()
			if _, stop := stopWords[tok]; !stop {
				tokens = append(tokens, tok)
			}
		}
		b.Reset()
	}
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

// Vectorize builds L2-normalized TF-IDF vectors for every document, in
// input order. Inverse document frequency uses smoothing
// (idf = ln((1+n)/(1+df)) + 1) so terms present in every document still
// carry a small positive weight and weights are never negative. A document
// with no informative terms yields an empty (zero) vector.
func Vectorize(docs []Doc) []Vector {
	terms := make([][]string, len(docs))
	df := make(map[string]int)
	for i, d := range docs {
		terms[i] = tokenize(d.Text)
		seen := make(map[string]struct{})
		for _, t := range terms[i] {
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}

	n := float64(len(docs))
	vectors := make([]Vector, len(docs))
	for i := range docs {
		v := make(Vector)
		for _, t := range terms[i] {
			v[t]++
		}
		var norm float64
		for t, tf := range v {
			idf := math.Log((1+n)/(1+float64(df[t]))) + 1
			w := tf * idf
			v[t] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for t := range v {
				v[t] /= norm
			}
		}
		vectors[i] = v
	}
	return vectors
}

// Cosine returns the cosine similarity of two vectors. For the non-negative
// weights produced by Vectorize the result lies in [0, 1]; either vector
// being zero yields 0.
func Cosine(a, b Vector) float64 {
	// Iterate the smaller vector for the dot product.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot, normA, normB float64
	for t, wa := range a {
		normA += wa * wa
		if wb, ok := b[t]; ok {
			dot += wa * wb
		}
	}
	for _, wb := range b {
		normB += wb * wb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Rank returns up to n document IDs most similar to targetID, descending by
// cosine similarity, never including targetID itself. Ties keep corpus
// order (the sort is stable); no ordering beyond that is promised for equal
// scores. The second return is false when targetID is not in the corpus, in
// which case the caller should fall back to plain storage order.
func Rank(docs []Doc, targetID string, n int) ([]string, bool) {
	targetIdx := -1
	for i, d := range docs {
		if d.ID == targetID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, false
	}

	vectors := Vectorize(docs)
	target := vectors[targetIdx]

	type scored struct {
		idx int
		sim float64
	}
	candidates := make([]scored, 0, len(docs)-1)
	for i := range docs {
		if i == targetIdx {
			continue // self-similarity is always 1.0, excluded
		}
		candidates = append(candidates, scored{idx: i, sim: Cosine(target, vectors[i])})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].sim > candidates[j].sim
	})

	if n > len(candidates) {
		n = len(candidates)
	}
	ids := make([]string, 0, n)
	for _, c := range candidates[:n] {
		ids = append(ids, docs[c.idx].ID)
	}
	return ids, true
}
