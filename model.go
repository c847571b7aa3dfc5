package librarian

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrIndexNotReady        = errors.New("recommendation index not ready")
	ErrInitializationFailed = errors.New("index initialization failed")
	ErrEmbeddingService     = errors.New("embedding service unavailable")
	ErrBookNotFound         = errors.New("book not found")
	ErrNoBooksFound         = errors.New("no books found")
	ErrInvalidBookID        = errors.New("invalid book ID")
)

type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Store   StoreConfig   `yaml:"store"`
	OpenAI  OpenAIConfig  `yaml:"openai"`
}

type CatalogConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type OpenAIConfig struct {
	BaseURL        string   `yaml:"baseURL"`
	APIKey         string   `yaml:"apiKey"`
	EmbeddingModel string   `yaml:"embeddingModel"`
	Dimension      int      `yaml:"dimension"`
	ChatModel      string   `yaml:"chatModel"`
	Temperature    float64  `yaml:"temperature"`
	MaxTokens      int      `yaml:"maxTokens"`
	Timeout        Duration `yaml:"timeout"`
}

type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	str := d.Duration().String()
	return json.Marshal(str)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	// Parse the string duration
	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() ([]byte, error) {
	str := d.Duration().String()
	return yaml.Marshal(str)
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	// Parse the string duration
	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

type BookStatus string

const (
	BookStatusAvailable   BookStatus = "available"
	BookStatusBorrowed    BookStatus = "borrowed"
	BookStatusLost        BookStatus = "lost"
	BookStatusMaintenance BookStatus = "maintenance"
)

// BookRecord is a read-only snapshot of a catalog row.
type BookRecord struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Author      string     `json:"author"`
	Genre       string     `json:"genre"`
	Description string     `json:"description"`
	Status      BookStatus `json:"status"`
}

// EmbeddingText concatenates the text fields used to embed a book.
func (b BookRecord) EmbeddingText() string {
	return strings.Join([]string{b.Title, b.Author, b.Genre, b.Description}, " ")
}

// BookMatch pairs a book with its similarity to a query.
type BookMatch struct {
	Book       BookRecord `json:"book"`
	Similarity float64    `json:"similarity"`
}

// Recommendation is the chat route's reply: a generated response plus up to
// three matched books when the message asked for recommendations.
type Recommendation struct {
	Response      string       `json:"response"`
	Books         []BookRecord `json:"books,omitempty"`
	IsBookRequest bool         `json:"isBookRequest"`
}

type IndexStatus struct {
	Initialized    bool `json:"isInitialized"`
	RealEmbeddings bool `json:"usesRealEmbeddings"`
	BookCount      int  `json:"bookCount"`
	EmbeddingCount int  `json:"embeddingCount"`
}
