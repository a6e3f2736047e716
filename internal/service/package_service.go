package service

import (
	"context"

	"henna-assistant-be/internal/dto"
	"henna-assistant-be/internal/pkg/logger"
	"henna-assistant-be/internal/repository/memory"
	"henna-assistant-be/pkg/catalog"
	"henna-assistant-be/pkg/events"
	"henna-assistant-be/pkg/store"
)

const (
	Currency                  = "BDT"
	NoPackagesMessage         = "No packages available."
	NoMatchingPackagesMessage = "No packages match your filters."
)

type IPackageService interface {
	GetPackages(ctx context.Context, sessionId string, request *dto.GetPackagesRequest) (*dto.GetPackagesResponse, error)
	ShowMore(ctx context.Context, sessionId string) (*dto.GetPackagesResponse, error)
}

type packageService struct {
	sessionRepo *memory.SessionRepository
	catalog     *catalog.Catalog
	publisher   IEventPublisher
	logger      logger.ILogger
}

func NewPackageService(
	sessionRepo *memory.SessionRepository,
	cat *catalog.Catalog,
	publisher IEventPublisher,
	log logger.ILogger,
) IPackageService {
	return &packageService{
		sessionRepo: sessionRepo,
		catalog:     cat,
		publisher:   publisher,
		logger:      log,
	}
}

// GetPackages applies the request's selection to the session's filter. Any
// change of the effective filter collapses the listing to the first page.
func (s *packageService) GetPackages(ctx context.Context, sessionId string, request *dto.GetPackagesRequest) (*dto.GetPackagesResponse, error) {
	if s.catalog.Empty() {
		return unavailablePackages(), nil
	}

	sess, _ := s.sessionRepo.GetOrCreate(sessionId)
	sess.Lock()
	defer sess.Unlock()

	sess.Filter.Replace(catalog.Selection{
		Type:   request.Type,
		Length: request.Length,
		Hand:   request.Hand,
		Side:   request.Side,
		Price:  request.MaxPrice,
	})
	view := sess.Filter.View()
	if sess.Paginator.Observe(view.Signature()) {
		s.logger.Debug("PACKAGES", "Filter changed, listing collapsed", map[string]interface{}{"session_id": sessionId})
	}
	if len(view.Reset) > 0 {
		s.logger.Info("PACKAGES", "Stale selection reset to All", map[string]interface{}{
			"session_id": sessionId,
			"attributes": view.Reset,
		})
	}

	res := s.render(sess, view)
	s.publisher.Publish(ctx, events.New(events.PackagesFiltered, map[string]interface{}{
		"session_id": sessionId,
		"total":      res.Total,
		"reset":      res.Reset,
	}))
	return res, nil
}

// ShowMore reveals the rest of the session's current listing.
func (s *packageService) ShowMore(ctx context.Context, sessionId string) (*dto.GetPackagesResponse, error) {
	if s.catalog.Empty() {
		return unavailablePackages(), nil
	}

	sess, _ := s.sessionRepo.GetOrCreate(sessionId)
	sess.Lock()
	defer sess.Unlock()

	view := sess.Filter.View()
	sess.Paginator.Observe(view.Signature())
	revealed := sess.Paginator.ShowMore(len(view.Packages))

	res := s.render(sess, view)
	if revealed {
		s.publisher.Publish(ctx, events.New(events.PackagesRevealed, map[string]interface{}{
			"session_id": sessionId,
			"total":      res.Total,
		}))
	}
	return res, nil
}

func (s *packageService) render(sess *store.Session, view catalog.View) *dto.GetPackagesResponse {
	page := sess.Paginator.Page(view.Packages)

	res := &dto.GetPackagesResponse{
		Available: true,
		Selection: dto.SelectionDTO{
			Type:     view.Selection.Get(catalog.AttrType),
			Length:   view.Selection.Get(catalog.AttrLength),
			Hand:     view.Selection.Get(catalog.AttrHand),
			Side:     view.Selection.Get(catalog.AttrSide),
			MaxPrice: view.Bound,
		},
		Options: make(map[string][]string, len(view.Options)),
		PriceRange: dto.PriceRangeDTO{
			Min:   view.PriceRange.Min,
			Max:   view.PriceRange.Max,
			Fixed: view.PriceRange.Fixed,
		},
		Rows:    [][]*dto.PackageCardDTO{},
		Total:   page.Total,
		Shown:   len(page.Items),
		HasMore: page.HasMore,
	}

	for attr, opts := range view.Options {
		res.Options[string(attr)] = append([]string{catalog.All}, opts...)
	}
	for _, attr := range view.Reset {
		res.Reset = append(res.Reset, string(attr))
	}
	for _, row := range page.Rows {
		cards := make([]*dto.PackageCardDTO, 0, len(row))
		for _, p := range row {
			cards = append(cards, toPackageCardDTO(p))
		}
		res.Rows = append(res.Rows, cards)
	}
	if page.HasMore {
		res.ShowMoreLabel = catalog.ShowMoreLabel
	}
	if page.Total == 0 {
		res.Message = NoMatchingPackagesMessage
	}
	return res
}

func unavailablePackages() *dto.GetPackagesResponse {
	return &dto.GetPackagesResponse{
		Available: false,
		Message:   NoPackagesMessage,
		Options:   map[string][]string{},
		Rows:      [][]*dto.PackageCardDTO{},
	}
}

func toPackageCardDTO(p catalog.Package) *dto.PackageCardDTO {
	return &dto.PackageCardDTO{
		Name:        p.Name,
		Type:        p.Type,
		Length:      p.Length,
		Hand:        p.Hand,
		Side:        p.Side,
		Description: p.Description,
		Price:       p.Price,
		Currency:    Currency,
	}
}
