package ingest

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/kdimtricp/acholiflixx/internal/events"
	"github.com/kdimtricp/acholiflixx/internal/forms"
	"github.com/kdimtricp/acholiflixx/internal/storage"
)

var (
	Categories      = []string{"Drama", "Documentary", "Culture", "Music", "Historical", "Animation", "Epic", "Series", "Short Film", "Comedy", "Romance"}
	Ratings         = []string{"G", "PG", "PG-13", "R", "NC-17"}
	Languages       = []string{"Acholi", "English", "Swahili", "Luganda", "Luo", "Other"}
	SubtitleOptions = []string{"English", "Acholi", "Swahili", "French", "None"}
)

// Attachment is one uploaded file. Body is read once, when staged.
type Attachment struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Submission struct {
	Title       string
	Description string
	Category    string
	Year        string
	Duration    string
	Rating      string
	Director    string
	Language    string
	Cast        []string
	Subtitles   []string
	Thumbnail   *Attachment
	Video       *Attachment
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func (s Submission) Validate() error {
	errs := forms.ValidationErrors{}
	errs.Required("title", s.Title, "Title is required")
	errs.Required("description", s.Description, "Description is required")
	errs.Required("duration", s.Duration, "Duration is required")

	if s.Category == "" {
		errs["category"] = "Category is required"
	} else if !contains(Categories, s.Category) {
		errs["category"] = "Unknown category"
	}
	if s.Language == "" {
		errs["language"] = "Language is required"
	} else if !contains(Languages, s.Language) {
		errs["language"] = "Unknown language"
	}
	if s.Rating != "" && !contains(Ratings, s.Rating) {
		errs["rating"] = "Unknown rating"
	}

	if strings.TrimSpace(s.Year) == "" {
		errs["year"] = "Year is required"
	} else if _, err := strconv.Atoi(strings.TrimSpace(s.Year)); err != nil {
		errs["year"] = "Year must be a number"
	}

	for _, sub := range s.Subtitles {
		if !contains(SubtitleOptions, sub) {
			errs["subtitles"] = "Unknown subtitle language"
		}
	}

	if s.Thumbnail != nil && !strings.HasPrefix(s.Thumbnail.ContentType, "image/") {
		errs["thumbnail"] = "Thumbnail must be an image"
	}
	if s.Video != nil && !strings.HasPrefix(s.Video.ContentType, "video/") {
		errs["video"] = "Video must be a video file"
	}
	return errs.Err()
}

// AddCast appends a trimmed name unless it is blank or already listed.
func AddCast(cast []string, name string) []string {
	name = strings.TrimSpace(name)
	if name == "" || contains(cast, name) {
		return cast
	}
	return append(cast, name)
}

// ParseCast builds a cast list from form values, each of which may hold
// several comma separated names.
func ParseCast(values []string) []string {
	var cast []string
	for _, v := range values {
		for _, name := range strings.Split(v, ",") {
			cast = AddCast(cast, name)
		}
	}
	return cast
}

// ToggleSubtitle adds lang when absent and removes it when present.
func ToggleSubtitle(subs []string, lang string) []string {
	if !contains(subs, lang) {
		return append(subs, lang)
	}
	out := make([]string, 0, len(subs)-1)
	for _, s := range subs {
		if s != lang {
			out = append(out, s)
		}
	}
	return out
}

// FormatSize renders a byte count in megabytes with one decimal.
func FormatSize(size int64) string {
	return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
}

// Staged is a validated submission whose files sit in staging storage.
type Staged struct {
	ID         string
	Submission Submission
	Files      []string
}

// Ingestor stands in for the content-ingestion pipeline.
type Ingestor interface {
	Ingest(ctx context.Context, staged Staged) error
}

// SimulatedIngestor accepts every submission after Delay.
type SimulatedIngestor struct {
	Delay time.Duration
}

func (i SimulatedIngestor) Ingest(ctx context.Context, staged Staged) error {
	return forms.Delay(ctx, i.Delay)
}

type Result struct {
	ID        string
	Title     string
	VideoSize string
}

type Service struct {
	staging   storage.Storage
	ingestor  Ingestor
	publisher events.Publisher
	logger    hclog.Logger
}

func NewService(staging storage.Storage, ingestor Ingestor, publisher events.Publisher, logger hclog.Logger) *Service {
	if publisher == nil {
		publisher = events.NewLogPublisher(nil)
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{staging: staging, ingestor: ingestor, publisher: publisher, logger: logger}
}

// Submit validates, stages the attachments, hands them to the ingestor and
// then discards every staged file whatever the outcome.
func (s *Service) Submit(ctx context.Context, sub Submission) (Result, error) {
	if err := sub.Validate(); err != nil {
		return Result{}, err
	}

	staged := Staged{ID: uuid.New().String(), Submission: sub}
	defer s.discard(staged.ID, &staged.Files)

	for _, att := range []*Attachment{sub.Thumbnail, sub.Video} {
		if att == nil || att.Body == nil {
			continue
		}
		name, err := s.staging.SaveFile(att.Body, storage.FileInfo{
			Filename:    att.Filename,
			ContentType: att.ContentType,
			Size:        att.Size,
		})
		if err != nil {
			return Result{}, fmt.Errorf("staging %s: %w", att.Filename, err)
		}
		staged.Files = append(staged.Files, name)
	}

	if err := s.ingestor.Ingest(ctx, staged); err != nil {
		return Result{}, fmt.Errorf("ingesting %q: %w", sub.Title, err)
	}

	s.logger.Info("upload accepted", "upload", staged.ID, "title", sub.Title, "files", len(staged.Files))
	if err := s.publisher.Publish(ctx, events.TopicIngest, map[string]any{
		"upload_id": staged.ID,
		"title":     sub.Title,
		"category":  sub.Category,
	}); err != nil {
		s.logger.Warn("publishing ingest event", "error", err)
	}

	res := Result{ID: staged.ID, Title: sub.Title}
	if sub.Video != nil {
		res.VideoSize = FormatSize(sub.Video.Size)
	}
	return res, nil
}

func (s *Service) discard(id string, files *[]string) {
	for _, name := range *files {
		if err := s.staging.DeleteFile(name); err != nil {
			s.logger.Warn("discarding staged file", "upload", id, "file", name, "error", err)
		}
	}
}
