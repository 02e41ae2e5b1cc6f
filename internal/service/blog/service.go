package blog

import (
	"context"
	"io"
	"regexp"
	"strings"
	"time"

	"fashion-storefront/internal/domain"
	"fashion-storefront/internal/logging"
	blogrepo "fashion-storefront/internal/repository/blog"
	"fashion-storefront/internal/storage"
	"go.uber.org/zap"
)

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

type notifier interface {
	Notify(ctx context.Context, typ domain.NotificationType, title, message, link string)
}

type Service struct {
	repo   blogrepo.Repository
	files  storage.Storage
	notify notifier
	now    func() time.Time
	logger *zap.Logger
}

func New(repo blogrepo.Repository, files storage.Storage, notify notifier, logger *zap.Logger) *Service {
	return &Service{repo: repo, files: files, notify: notify, now: time.Now, logger: logging.OrNop(logger)}
}

type Input struct {
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Excerpt      string   `json:"excerpt"`
	Content      string   `json:"content"`
	FeatureImage string   `json:"featureImage"`
	Tags         []string `json:"tags"`
	Published    bool     `json:"published"`
}

// Slugify lowercases s and joins its alphanumeric runs with dashes.
func Slugify(s string) string {
	return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// ListPublished backs the public blog index.
func (s *Service) ListPublished(ctx context.Context) ([]domain.BlogPost, error) {
	return s.repo.List(ctx, true)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.BlogPost, error) {
	return s.repo.List(ctx, false)
}

// GetPublished hides drafts as not found.
func (s *Service) GetPublished(ctx context.Context, slug string) (*domain.BlogPost, error) {
	p, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !p.Published {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.BlogPost, error) {
	p, err := in.toPost()
	if err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if created.Published {
		s.announce(ctx, created)
	}
	return created, nil
}

// Update replaces a post; publishing a draft posts a blog notification.
func (s *Service) Update(ctx context.Context, id string, in Input) (*domain.BlogPost, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := in.toPost()
	if err != nil {
		return nil, err
	}
	p.ID = id
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	if updated.Published && !current.Published {
		s.announce(ctx, updated)
	}
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) UploadFeatureImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.files.Put(ctx, storage.BlogFeaturePath(filename, s.now()), r)
}

func (s *Service) UploadContentImage(ctx context.Context, filename string, r io.Reader) (string, error) {
	return s.files.Put(ctx, storage.BlogContentPath(filename, s.now()), r)
}

func (s *Service) announce(ctx context.Context, p *domain.BlogPost) {
	s.logger.Info("blog: published", zap.String("slug", p.Slug))
	s.notify.Notify(ctx, domain.NotifyBlog, "New on the blog", p.Title, "/blog/"+p.Slug)
}

func (in Input) toPost() (domain.BlogPost, error) {
	p := domain.BlogPost{
		Title:        strings.TrimSpace(in.Title),
		Excerpt:      strings.TrimSpace(in.Excerpt),
		Content:      in.Content,
		FeatureImage: strings.TrimSpace(in.FeatureImage),
		Published:    in.Published,
	}
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			p.Tags = append(p.Tags, t)
		}
	}
	if p.Title == "" {
		return p, domain.Invalid("title", "required")
	}
	p.Slug = Slugify(in.Slug)
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Slug == "" {
		return p, domain.Invalid("slug", "must contain letters or digits")
	}
	return p, nil
}
