package providers

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/llmproviders/pkg/errors"
	"github.com/agentstation/llmproviders/pkg/models"
)

type stubProvider struct {
	id  string
	raw any
}

func (p *stubProvider) ID() string         { return p.id }
func (p *stubProvider) Metadata() Metadata { return Metadata{Key: "stub", Name: "Stub"} }
func (p *stubProvider) ModelList(context.Context) (ModelList, error) {
	return ModelList{}, nil
}
func (p *stubProvider) LoadChatModel(context.Context, string) (models.ChatModel, error) {
	return nil, nil
}
func (p *stubProvider) LoadEmbeddingModel(context.Context, string) (models.EmbeddingModel, error) {
	return nil, nil
}

func stubType(key string) Type {
	return Type{
		Metadata: Metadata{Key: key, Name: key},
		Factory: func(id string, raw any, _ ModelLookup) (Provider, error) {
			return &stubProvider{id: id, raw: raw}, nil
		},
	}
}

func TestModelListFind(t *testing.T) {
	list := ModelList{
		Chat:      []Model{{Name: "Llama 3", Key: "llama3"}},
		Embedding: []Model{{Name: "Nomic", Key: "nomic-embed-text"}},
	}

	m, ok := list.Find(KindChat, "llama3")
	assert.True(t, ok)
	assert.Equal(t, "Llama 3", m.Name)

	_, ok = list.Find(KindChat, "nomic-embed-text")
	assert.False(t, ok, "keys are looked up per kind")

	_, ok = list.Find(KindEmbedding, "Nomic")
	assert.False(t, ok, "names are not keys")

	_, ok = list.Find("other", "llama3")
	assert.False(t, ok)
}

func TestModelListMerge(t *testing.T) {
	catalog := ModelList{
		Chat:      []Model{{Name: "Llama 3", Key: "llama3"}},
		Embedding: []Model{{Name: "Llama 3", Key: "llama3"}},
	}
	merged := catalog.Merge(ConfiguredModels{
		Chat:      []Model{{Name: "Mine", Key: "llama3"}},
		Embedding: []Model{{Name: "Nomic", Key: "nomic-embed-text"}},
	})

	assert.Equal(t, []Model{{Name: "Llama 3", Key: "llama3"}, {Name: "Mine", Key: "llama3"}}, merged.Chat)
	assert.Equal(t, []Model{{Name: "Llama 3", Key: "llama3"}, {Name: "Nomic", Key: "nomic-embed-text"}}, merged.Embedding)

	merged.Chat[0].Name = "changed"
	assert.Equal(t, "Llama 3", catalog.Chat[0].Name)
}

func TestStaticModels(t *testing.T) {
	s := NewStaticModels()

	empty, err := s.ConfiguredModels("missing")
	require.NoError(t, err)
	assert.Empty(t, empty.Chat)
	assert.Empty(t, empty.Embedding)

	chat := []Model{{Name: "A", Key: "a"}}
	s.Set("local", ConfiguredModels{Chat: chat})
	chat[0].Key = "mutated"

	got, err := s.ConfiguredModels("local")
	require.NoError(t, err)
	assert.Equal(t, []Model{{Name: "A", Key: "a"}}, got.Chat)
}

func TestStaticModelsZeroValue(t *testing.T) {
	var s StaticModels
	s.Set("x", ConfiguredModels{Embedding: []Model{{Key: "e"}}})
	got, err := s.ConfiguredModels("x")
	require.NoError(t, err)
	assert.Len(t, got.Embedding, 1)
}

func TestStaticModelsConcurrent(t *testing.T) {
	s := NewStaticModels()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Set("p", ConfiguredModels{Chat: []Model{{Key: "k"}}})
		}()
		go func() {
			defer wg.Done()
			_, _ = s.ConfiguredModels("p")
		}()
	}
	wg.Wait()
}

func TestApplyEnvDefaults(t *testing.T) {
	fields := []ConfigField{
		{Key: "mode"},
		{Key: "baseURL", Env: "OLLAMA_BASE_URL"},
		{Key: "apiKey", Env: "OLLAMA_API_KEY"},
	}
	env := map[string]string{
		"OLLAMA_BASE_URL": "http://env:11434",
		"OLLAMA_API_KEY":  "env-key",
	}
	raw := map[string]any{"mode": "cloud", "apiKey": "explicit"}

	out := ApplyEnvDefaults(fields, raw, func(k string) string { return env[k] })

	assert.Equal(t, map[string]any{
		"mode":    "cloud",
		"baseURL": "http://env:11434",
		"apiKey":  "explicit",
	}, out)
	assert.NotContains(t, raw, "baseURL", "input must not be modified")
}

func TestApplyEnvDefaultsEmptyValues(t *testing.T) {
	fields := []ConfigField{{Key: "baseURL", Env: "B"}, {Key: "apiKey", Env: "K"}}
	out := ApplyEnvDefaults(fields, map[string]any{"baseURL": ""}, func(k string) string {
		if k == "B" {
			return "http://b"
		}
		return ""
	})
	assert.Equal(t, map[string]any{"baseURL": "http://b"}, out)

	out = ApplyEnvDefaults(fields, nil, nil)
	assert.Empty(t, out)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubType("zeta")))
	require.NoError(t, r.Register(stubType("alpha")))

	types := r.Types()
	require.Len(t, types, 2)
	assert.Equal(t, "alpha", types[0].Metadata.Key)
	assert.Equal(t, "zeta", types[1].Metadata.Key)

	p, err := r.New("alpha", "my-alpha", map[string]any{"x": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, "my-alpha", p.ID())
	assert.Equal(t, map[string]any{"x": 1}, p.(*stubProvider).raw)

	_, ok := r.Get("zeta")
	assert.True(t, ok)
}

func TestRegistryErrors(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(stubType("alpha")))

	err := r.Register(stubType("alpha"))
	assert.True(t, errors.IsValidationError(err))

	err = r.Register(Type{Metadata: Metadata{Key: "nofactory"}})
	assert.True(t, errors.IsValidationError(err))

	err = r.Register(Type{Factory: stubType("x").Factory})
	assert.True(t, errors.IsValidationError(err))

	_, err = r.New("missing", "id", nil, nil)
	var nf *errors.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "missing", nf.ID)
}
