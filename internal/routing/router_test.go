package routing

import (
	"context"
	"fmt"
	"testing"

	"github.com/sportiq/sportiq-go/internal/rag"
)

// fakeRetriever counts Retrieve calls and returns up to topK canned passages.
type fakeRetriever struct {
	// docs is the pool of passages to return.
	docs []rag.Document
	// calls counts Retrieve invocations.
	calls int
	// lastTopK records the topK of the most recent call.
	lastTopK int
	// err, when set, is returned instead of passages.
	err error
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string, topK int) ([]rag.Document, error) {
	f.calls++
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	if topK > len(f.docs) {
		topK = len(f.docs)
	}
	return f.docs[:topK], nil
}

// manyDocs builds n distinct passages.
func manyDocs(n int) []rag.Document {
	docs := make([]rag.Document, n)
	for i := range docs {
		docs[i] = rag.Document{ID: fmt.Sprintf("doc-%d", i), Content: fmt.Sprintf("passage %d", i)}
	}
	return docs
}

func Test_Route_NonSportSkipsIndex(t *testing.T) {
	t.Parallel()

	ret := &fakeRetriever{docs: manyDocs(10)}
	r := NewRouter(ret)

	docs, category := r.Route(context.Background(), "Tell me about the stock market.")

	if category != CategoryNonSport {
		t.Errorf("want Non-Sport, got %s", category)
	}
	if len(docs) != 0 {
		t.Errorf("want empty passages for non-sport question, got %d", len(docs))
	}
	if ret.calls != 0 {
		t.Errorf("index must never be queried for non-sport questions, got %d calls", ret.calls)
	}
}

func Test_Route_TopKPerCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		question string
		category Category
		wantK    int
	}{
		{"factual", "Who won the 2018 World Cup?", CategoryFactual, 4},
		{"comparative", "Compare Messi vs Ronaldo career statistics", CategoryComparative, 6},
		{"analytical", "Why is possession important in modern football?", CategoryAnalytical, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ret := &fakeRetriever{docs: manyDocs(10)}
			r := NewRouter(ret)

			docs, category := r.Route(context.Background(), tt.question)

			if category != tt.category {
				t.Errorf("want category %s, got %s", tt.category, category)
			}
			if ret.calls != 1 {
				t.Fatalf("want exactly 1 lookup, got %d", ret.calls)
			}
			if ret.lastTopK != tt.wantK {
				t.Errorf("want topK %d, got %d", tt.wantK, ret.lastTopK)
			}
			if len(docs) != tt.wantK {
				t.Errorf("want %d passages with a full index, got %d", tt.wantK, len(docs))
			}
		})
	}
}

func Test_Route_PreservesRelevanceOrder(t *testing.T) {
	t.Parallel()

	ret := &fakeRetriever{docs: manyDocs(10)}
	r := NewRouter(ret)

	docs, _ := r.Route(context.Background(), "Who won the 2018 World Cup?")
	for i, doc := range docs {
		if want := fmt.Sprintf("doc-%d", i); doc.ID != want {
			t.Errorf("passage %d: want %s, got %s (order must not be re-sorted)", i, want, doc.ID)
		}
	}
}

func Test_Route_RetrievalErrorDegradesToEmpty(t *testing.T) {
	t.Parallel()

	ret := &fakeRetriever{err: fmt.Errorf("index unreachable")}
	r := NewRouter(ret)

	docs, category := r.Route(context.Background(), "Who won the 2018 World Cup?")

	if category != CategoryFactual {
		t.Errorf("want a valid category despite lookup failure, got %s", category)
	}
	if len(docs) != 0 {
		t.Errorf("want empty passages on lookup failure, got %d", len(docs))
	}
}

func Test_Route_NilRetriever(t *testing.T) {
	t.Parallel()

	r := NewRouter(nil)
	docs, category := r.Route(context.Background(), "Who won the 2018 World Cup?")

	if category != CategoryFactual {
		t.Errorf("want Factual, got %s", category)
	}
	if len(docs) != 0 {
		t.Errorf("want empty passages without a retriever, got %d", len(docs))
	}
}
