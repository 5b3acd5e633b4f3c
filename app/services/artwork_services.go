package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/kalaghar/app/models"
	"github.com/shashiranjanraj/kalaghar/app/repositories"
	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
	"github.com/shashiranjanraj/kalaghar/pkg/logger"
	"github.com/shashiranjanraj/kalaghar/pkg/metrics"
	"github.com/shashiranjanraj/kalaghar/pkg/storage"
	"github.com/shashiranjanraj/kalaghar/pkg/validate"
)

type ArtworkInput struct {
	Title  string `json:"title"  validate:"required,max=255"`
	Artist string `json:"artist" validate:"nullable,max=255"`
	Price  int64  `json:"price"  validate:"min=0,max=1000000000000"`
	Image  string `json:"image"  validate:"nullable,max=1024"`
	Year   string `json:"year"   validate:"nullable,max=64"`
	Story  string `json:"story"  validate:"nullable,max=5000"`
}

// Upload is the stored location of an artwork image.
type Upload struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

var imageTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".gif":  "image/gif",
}

type ArtworkService struct {
	artworks repositories.ArtworkRepository
	disk     storage.Disk
}

func NewArtworkService(artworks repositories.ArtworkRepository, disk storage.Disk) *ArtworkService {
	return &ArtworkService{artworks: artworks, disk: disk}
}

func (s *ArtworkService) List(ctx context.Context) ([]models.Artwork, error) {
	out, err := s.artworks.All(ctx)
	if err != nil {
		return nil, storeErr(err, "Artworks")
	}
	return out, nil
}

func (s *ArtworkService) Get(ctx context.Context, id string) (*models.Artwork, error) {
	a, err := s.artworks.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "Artwork")
	}
	return a, nil
}

// Create lists a new artwork. The artist defaults to the caller's name.
func (s *ArtworkService) Create(ctx context.Context, c Caller, in ArtworkInput) (*models.Artwork, error) {
	if errs := validate.Struct(in); validate.HasErrors(errs) {
		return nil, apperr.Invalid(errs)
	}

	a := &models.Artwork{
		Title:  strings.TrimSpace(in.Title),
		Artist: strings.TrimSpace(in.Artist),
		Price:  in.Price,
		Image:  strings.TrimSpace(in.Image),
		Year:   strings.TrimSpace(in.Year),
		Story:  in.Story,
	}
	if a.Artist == "" {
		a.Artist = c.Name
	}

	if err := s.artworks.Create(ctx, a); err != nil {
		return nil, storeErr(err, "Artwork")
	}
	metrics.ArtworksCreated.Inc()
	logger.WithCtx(ctx).Info("artwork created", "artwork_id", a.ID, "price", a.Price)
	return a, nil
}

// Quote prices checkout for a stored artwork.
func (s *ArtworkService) Quote(ctx context.Context, id string) (Quote, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	return QuoteFor(a.Price), nil
}

// UploadImage stores an image under artworks/ with a random name.
func (s *ArtworkService) UploadImage(ctx context.Context, filename string, r io.Reader) (*Upload, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := imageTypes[ext]
	if !ok {
		return nil, apperr.Invalid(map[string]string{"image": "The image must be a jpg, png, webp or gif file."})
	}

	key := fmt.Sprintf("artworks/%s%s", uuid.NewString(), ext)
	if err := s.disk.Put(ctx, key, r, contentType); err != nil {
		return nil, apperr.Internal("Could not store image", err)
	}
	return &Upload{URL: s.disk.URL(key), Path: key}, nil
}
