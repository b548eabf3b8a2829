package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/sarthakjain/storerate/app/models"
	"github.com/sarthakjain/storerate/app/repositories"
	"github.com/sarthakjain/storerate/pkg/apperr"
	"github.com/sarthakjain/storerate/pkg/cache"
	"github.com/sarthakjain/storerate/pkg/pagination"
	"github.com/sarthakjain/storerate/pkg/rbac"
)

// StoreService implements store browsing, creation, and owner views.
type StoreService struct {
	stores  *repositories.StoreRepository
	users   *repositories.UserRepository
	ratings *repositories.RatingRepository
}

func NewStoreService(
	stores *repositories.StoreRepository,
	users *repositories.UserRepository,
	ratings *repositories.RatingRepository,
) *StoreService {
	return &StoreService{stores: stores, users: users, ratings: ratings}
}

// StoreInput carries the validated store payload.
type StoreInput struct {
	Name    string `json:"name" validate:"required,between=3,60"`
	Email   string `json:"email" validate:"required,email"`
	Address string `json:"address" validate:"required,max=400"`
}

// Create registers a store under ownerID. The owner must hold the OWNER role
// even when the route gate already checked it, because admin tooling calls
// this with arbitrary IDs.
func (s *StoreService) Create(ownerID uint, in StoreInput) (models.Store, error) {
	owner, err := s.users.FindByID(ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Store{}, apperr.NotFound("Owner not found")
		}
		return models.Store{}, err
	}
	if owner.Role != rbac.RoleOwner {
		return models.Store{}, apperr.BadRequest("Store owner must have the OWNER role")
	}

	store := models.Store{
		Name:    in.Name,
		Email:   in.Email,
		Address: in.Address,
		OwnerID: &ownerID,
	}
	if err := s.stores.Create(&store); err != nil {
		return models.Store{}, err
	}

	cache.Del(dashboardCacheKey)
	return store, nil
}

// List returns a page of stores with computed averages, rating rosters, and
// owner summaries. When viewerID is set, each row also carries that user's
// own rating.
func (s *StoreService) List(p pagination.Params, viewerID *uint) ([]StoreView, int64, error) {
	stores, total, err := s.stores.List(p)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.assemble(stores, viewerID)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

// Get returns one store with its aggregate and roster, 404 when absent.
func (s *StoreService) Get(id uint, viewerID *uint) (StoreView, error) {
	store, err := s.stores.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StoreView{}, apperr.NotFound("Store not found")
		}
		return StoreView{}, err
	}

	views, err := s.assemble([]models.Store{store}, viewerID)
	if err != nil {
		return StoreView{}, err
	}
	return views[0], nil
}

// OwnerStores returns the caller's stores with ratings and raters, 404 when
// the caller owns none.
func (s *StoreService) OwnerStores(ownerID uint) ([]StoreView, error) {
	stores, err := s.stores.FindByOwner(ownerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, apperr.NotFound("No store found for this owner")
	}
	return s.assemble(stores, nil)
}

// assemble turns model rows into StoreViews: batch-loads averages, rating
// rosters, owners, and (optionally) the viewer's own ratings.
func (s *StoreService) assemble(stores []models.Store, viewerID *uint) ([]StoreView, error) {
	ids := make([]uint, 0, len(stores))
	ownerIDs := make([]uint, 0, len(stores))
	for _, st := range stores {
		ids = append(ids, st.ID)
		if st.OwnerID != nil {
			ownerIDs = append(ownerIDs, *st.OwnerID)
		}
	}

	averages, err := s.ratings.AveragesForStores(ids)
	if err != nil {
		return nil, err
	}

	roster, err := s.ratings.ForStores(ids)
	if err != nil {
		return nil, err
	}
	rosterByStore := make(map[uint][]RatingView, len(ids))
	for _, rating := range roster {
		rosterByStore[rating.StoreID] = append(rosterByStore[rating.StoreID], toRatingView(rating))
	}

	owners, err := s.users.FindByIDs(ownerIDs)
	if err != nil {
		return nil, err
	}

	var mine map[uint]int
	if viewerID != nil {
		mine, err = s.ratings.ValuesForUser(*viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	views := make([]StoreView, 0, len(stores))
	for _, st := range stores {
		view := StoreView{
			ID:        st.ID,
			Name:      st.Name,
			Email:     st.Email,
			Address:   st.Address,
			OwnerID:   st.OwnerID,
			CreatedAt: st.CreatedAt,
			Ratings:   rosterByStore[st.ID],
		}
		if view.Ratings == nil {
			view.Ratings = []RatingView{}
		}
		if agg, ok := averages[st.ID]; ok {
			view.AverageRating = agg.Avg
			view.TotalRatings = agg.Count
		}
		if st.OwnerID != nil {
			if owner, ok := owners[*st.OwnerID]; ok {
				summary := toUserSummary(owner)
				view.Owner = &summary
			}
		}
		if mine != nil {
			if v, ok := mine[st.ID]; ok {
				value := v
				view.MyRating = &value
			}
		}
		views = append(views, view)
	}
	return views, nil
}
