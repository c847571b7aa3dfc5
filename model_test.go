package librarian

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"
)

func TestConfigYAMLUnmarshal(t *testing.T) {
	assert := assert.New(t)

	input := `catalog:
  driver: sqlite
  dsn: library.db
store:
  path: embeddings.json
openai:
  baseURL: https://api.openai.com/v1
  embeddingModel: text-embedding-3-small
  dimension: 1536
  chatModel: gpt-4o-mini
  temperature: 0.7
  maxTokens: 500
  timeout: 30s`

	var cfg Config
	if err := yaml.Unmarshal([]byte(input), &cfg); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal("sqlite", cfg.Catalog.Driver)
	assert.Equal("library.db", cfg.Catalog.DSN)
	assert.Equal("embeddings.json", cfg.Store.Path)
	assert.Equal(1536, cfg.OpenAI.Dimension)
	assert.Equal(30*time.Second, cfg.OpenAI.Timeout.Duration())
}

func TestDurationJSONRoundTrip(t *testing.T) {
	assert := assert.New(t)

	d := Duration(90 * time.Second)

	data, err := json.Marshal(d)
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(`"1m30s"`, string(data))

	var parsed Duration
	if err := json.Unmarshal(data, &parsed); err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal(d, parsed)
}

func TestBookRecordEmbeddingText(t *testing.T) {
	assert := assert.New(t)

	book := BookRecord{
		ID:          1,
		Title:       "Gone Dark",
		Author:      "Lee Child",
		Genre:       "Mystery",
		Description: "A detective thriller.",
		Status:      BookStatusAvailable,
	}

	assert.Equal("Gone Dark Lee Child Mystery A detective thriller.", book.EmbeddingText())
}

func TestIsBookRequest(t *testing.T) {
	assert := assert.New(t)

	assert.True(isBookRequest("Recommend me a mystery novel"))
	assert.True(isBookRequest("I'm looking for something to read."))
	assert.True(isBookRequest("any good books?"))
	assert.False(isBookRequest("hello"))
	assert.False(isBookRequest("when do you close today?"))
}
