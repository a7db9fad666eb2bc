package services

import (
	"iter"
	"time"

	"github.com/yungbote/servicehub-backend/internal/data/repos"
	types "github.com/yungbote/servicehub-backend/internal/domain"
	"github.com/yungbote/servicehub-backend/internal/platform/dbctx"
	"github.com/yungbote/servicehub-backend/internal/platform/logger"
)

// Placeholders rendered when a referenced row cannot be resolved.
const (
	UnknownServiceTitle = "Unknown Service"
	UnknownUserName     = "Unknown User"
	UnknownProviderName = "Unknown"
	AnonymousReviewer   = "Anonymous"
)

type BookingView struct {
	ID           int64   `json:"id"`
	ServiceID    int64   `json:"service_id"`
	UserID       int64   `json:"user_id"`
	ServiceTitle string  `json:"service_title"`
	ServiceImage string  `json:"service_image"`
	Status       string  `json:"status"`
	BookingDate  string  `json:"booking_date"`
	Price        float64 `json:"price"`
	UserName     string  `json:"user_name"`
	UserEmail    string  `json:"user_email"`
	UserAvatar   string  `json:"user_avatar"`
}

type ReviewView struct {
	ID        int64  `json:"id"`
	ServiceID int64  `json:"service_id"`
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

type ServiceView struct {
	ID           int64   `json:"id"`
	ProviderID   int64   `json:"provider_id"`
	ProviderName string  `json:"provider_name"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	Price        float64 `json:"price"`
	ImageURL     string  `json:"image_url"`
	Rating       float64 `json:"rating"`
	ReviewCount  int     `json:"review_count"`
}

// relations resolves optional references. A lookup that fails or finds
// nothing yields an empty map entry, which the view builders render as a
// placeholder instead of an error.
type relations struct {
	log      *logger.Logger
	services repos.ServiceRepo
	users    repos.UserRepo
}

func (r relations) servicesByID(dbc dbctx.Context, ids []int64) map[int64]*types.Service {
	out := make(map[int64]*types.Service, len(ids))
	if len(ids) == 0 || r.services == nil {
		return out
	}
	rows, err := r.services.GetByIDs(dbc, ids)
	if err != nil {
		r.log.Warn("service lookup failed; rendering placeholders", "error", err)
		return out
	}
	for _, s := range rows {
		if s != nil {
			out[s.ID] = s
		}
	}
	return out
}

func (r relations) usersByID(dbc dbctx.Context, ids []int64) map[int64]*types.User {
	out := make(map[int64]*types.User, len(ids))
	if len(ids) == 0 || r.users == nil {
		return out
	}
	rows, err := r.users.GetByIDs(dbc, ids)
	if err != nil {
		r.log.Warn("user lookup failed; rendering placeholders", "error", err)
		return out
	}
	for _, u := range rows {
		if u != nil {
			out[u.ID] = u
		}
	}
	return out
}

func (r relations) bookingViews(dbc dbctx.Context, bookings []*types.Booking) []BookingView {
	serviceIDs := make([]int64, 0, len(bookings))
	userIDs := make([]int64, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		serviceIDs = append(serviceIDs, b.ServiceID)
		userIDs = append(userIDs, b.UserID)
	}
	svcs := r.servicesByID(dbc, uniqueIDs(serviceIDs))
	users := r.usersByID(dbc, uniqueIDs(userIDs))

	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		if b == nil {
			continue
		}
		out = append(out, newBookingView(b, svcs[b.ServiceID], users[b.UserID]))
	}
	return out
}

func newBookingView(b *types.Booking, s *types.Service, u *types.User) BookingView {
	v := BookingView{
		ID:           b.ID,
		ServiceID:    b.ServiceID,
		UserID:       b.UserID,
		ServiceTitle: UnknownServiceTitle,
		Status:       b.Status,
		BookingDate:  b.BookingDate,
		UserName:     UnknownUserName,
	}
	if v.Status == "" {
		v.Status = string(types.BookingPending)
	}
	if s != nil {
		v.ServiceTitle = s.Title
		v.ServiceImage = s.ImageURL
		v.Price = s.Price
	}
	if u != nil {
		v.UserName = u.Name
		v.UserEmail = u.Email
		if u.AvatarURL != nil {
			v.UserAvatar = *u.AvatarURL
		}
	}
	return v
}

// reviewSeq yields views over an already-loaded slice, so ranging over it
// twice produces the same reviews. The "now" fallback for a missing
// timestamp is taken when each view is produced.
func reviewSeq(reviews []*types.Review, users map[int64]*types.User, now func() time.Time) iter.Seq[ReviewView] {
	return func(yield func(ReviewView) bool) {
		for _, r := range reviews {
			if r == nil {
				continue
			}
			v := ReviewView{
				ID:        r.ID,
				ServiceID: r.ServiceID,
				UserID:    r.UserID,
				UserName:  AnonymousReviewer,
				Rating:    r.Rating,
				Comment:   r.Comment,
			}
			if u := users[r.UserID]; u != nil {
				v.UserName = u.Name
			}
			if r.CreatedAt != nil && !r.CreatedAt.IsZero() {
				v.CreatedAt = formatTimestamp(*r.CreatedAt)
			} else {
				v.CreatedAt = formatTimestamp(now())
			}
			if !yield(v) {
				return
			}
		}
	}
}

func newServiceView(s *types.Service, provider *types.User) ServiceView {
	v := ServiceView{
		ID:           s.ID,
		ProviderID:   s.ProviderID,
		ProviderName: UnknownProviderName,
		Title:        s.Title,
		Description:  s.Description,
		Category:     s.Category,
		Location:     s.Location,
		Price:        s.Price,
		ImageURL:     s.ImageURL,
		Rating:       s.Rating,
		ReviewCount:  s.ReviewCount,
	}
	if provider != nil {
		v.ProviderName = provider.Name
	}
	return v
}

func (r relations) serviceViews(dbc dbctx.Context, services []*types.Service) []ServiceView {
	providerIDs := make([]int64, 0, len(services))
	for _, s := range services {
		if s != nil {
			providerIDs = append(providerIDs, s.ProviderID)
		}
	}
	providers := r.usersByID(dbc, uniqueIDs(providerIDs))
	out := make([]ServiceView, 0, len(services))
	for _, s := range services {
		if s != nil {
			out = append(out, newServiceView(s, providers[s.ProviderID]))
		}
	}
	return out
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
