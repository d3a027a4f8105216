package rag

import (
	"context"
	"fmt"
	"testing"
)

// fakeEmbedder returns a fixed vector for every input text.
type fakeEmbedder struct {
	// vector is returned for each input.
	vector []float32
	// err, when set, is returned instead.
	err error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector
	}
	return out, nil
}

// fakeStore records Search calls and returns a canned result.
type fakeStore struct {
	// docs is returned from every Search call, truncated to topK.
	docs []Document
	// searchCalls counts Search invocations.
	searchCalls int
	// lastTopK records the topK of the most recent Search.
	lastTopK int
	// err, when set, is returned from Search instead.
	err error
}

func (f *fakeStore) Upsert(context.Context, []Document, [][]float32) error { return nil }
func (f *fakeStore) Delete(context.Context, []string) error                { return nil }
func (f *fakeStore) Close() error                                          { return nil }

func (f *fakeStore) Search(_ context.Context, _ []float32, topK int) ([]Document, error) {
	f.searchCalls++
	f.lastTopK = topK
	if f.err != nil {
		return nil, f.err
	}
	if topK > len(f.docs) {
		topK = len(f.docs)
	}
	return f.docs[:topK], nil
}

func Test_NewRetriever_NilDeps(t *testing.T) {
	t.Parallel()

	if _, err := NewRetriever(nil, &fakeStore{}, 4); err == nil {
		t.Error("expected error for nil embedder")
	}
	if _, err := NewRetriever(&fakeEmbedder{}, nil, 4); err == nil {
		t.Error("expected error for nil store")
	}
}

func Test_Retriever_PassesTopKThrough(t *testing.T) {
	t.Parallel()

	store := &fakeStore{docs: []Document{{ID: "a"}, {ID: "b"}, {ID: "c"}}}
	r, err := NewRetriever(&fakeEmbedder{vector: []float32{1, 0}}, store, 4)
	if err != nil {
		t.Fatalf("new retriever: %v", err)
	}

	docs, err := r.Retrieve(context.Background(), "who won the cup", 2)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(docs) != 2 {
		t.Errorf("want 2 docs, got %d", len(docs))
	}
	if store.lastTopK != 2 {
		t.Errorf("want topK 2 passed to store, got %d", store.lastTopK)
	}
}

func Test_Retriever_DefaultTopK(t *testing.T) {
	t.Parallel()

	store := &fakeStore{docs: []Document{{ID: "a"}}}
	r, err := NewRetriever(&fakeEmbedder{vector: []float32{1, 0}}, store, 6)
	if err != nil {
		t.Fatalf("new retriever: %v", err)
	}

	if _, err := r.Retrieve(context.Background(), "q", 0); err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if store.lastTopK != 6 {
		t.Errorf("want configured default topK 6, got %d", store.lastTopK)
	}
}

func Test_Retriever_EmbedFailure(t *testing.T) {
	t.Parallel()

	store := &fakeStore{}
	r, err := NewRetriever(&fakeEmbedder{err: fmt.Errorf("model offline")}, store, 4)
	if err != nil {
		t.Fatalf("new retriever: %v", err)
	}

	if _, err := r.Retrieve(context.Background(), "q", 4); err == nil {
		t.Fatal("expected error when embedding fails")
	}
	if store.searchCalls != 0 {
		t.Errorf("store must not be searched when embedding fails, got %d calls", store.searchCalls)
	}
}
