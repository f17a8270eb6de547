package memory

import (
	"context"
	"sync"
	"time"

	domainbooking "hajez/internal/domain/booking"
	domaincalendar "hajez/internal/domain/calendar"
	domainhalls "hajez/internal/domain/halls"
	domainpricing "hajez/internal/domain/pricing"
)

// HallRepository is an in-memory implementation used by tests and dev mode.
type HallRepository struct {
	mu    sync.RWMutex
	items map[domainhalls.HallID]*domainhalls.Hall
}

func NewHallRepository() *HallRepository {
	return &HallRepository{items: make(map[domainhalls.HallID]*domainhalls.Hall)}
}

// ByID returns a hall or halls.ErrHallNotFound.
func (r *HallRepository) ByID(ctx context.Context, id domainhalls.HallID) (*domainhalls.Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	hall, ok := r.items[id]
	if !ok {
		return nil, domainhalls.ErrHallNotFound
	}
	clone := *hall
	return &clone, nil
}

func (r *HallRepository) BySlug(ctx context.Context, slug string) (*domainhalls.Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, hall := range r.items {
		if hall.Slug == slug {
			clone := *hall
			return &clone, nil
		}
	}
	return nil, domainhalls.ErrHallNotFound
}

func (r *HallRepository) List(ctx context.Context) ([]*domainhalls.Hall, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainhalls.Hall, 0, len(r.items))
	for _, hall := range r.items {
		clone := *hall
		out = append(out, &clone)
	}
	return out, nil
}

func (r *HallRepository) Save(ctx context.Context, hall *domainhalls.Hall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *hall
	r.items[hall.ID] = &clone
	return nil
}

// DayRepository stores per-date calendar records keyed by (hall, date).
type DayRepository struct {
	mu    sync.RWMutex
	items map[domainhalls.HallID]map[time.Time]domaincalendar.Day
}

func NewDayRepository() *DayRepository {
	return &DayRepository{items: make(map[domainhalls.HallID]map[time.Time]domaincalendar.Day)}
}

func (r *DayRepository) DaysInRange(ctx context.Context, hallID domainhalls.HallID, from, to time.Time) ([]domaincalendar.Day, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domaincalendar.Day
	for day, record := range r.items[hallID] {
		if day.Before(domainpricing.Midnight(from)) || day.After(domainpricing.Midnight(to)) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (r *DayRepository) UpsertDay(ctx context.Context, day domaincalendar.Day) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	byDate, ok := r.items[day.HallID]
	if !ok {
		byDate = make(map[time.Time]domaincalendar.Day)
		r.items[day.HallID] = byDate
	}
	day.Date = domainpricing.Midnight(day.Date)
	byDate[day.Date] = day
	return nil
}

// BookingRepository keeps bookings in memory.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[domainbooking.BookingID]*domainbooking.Booking
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{items: make(map[domainbooking.BookingID]*domainbooking.Booking)}
}

func (r *BookingRepository) ByID(ctx context.Context, id domainbooking.BookingID) (*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domainbooking.ErrBookingNotFound
	}
	return b, nil
}

func (r *BookingRepository) ByHallInRange(ctx context.Context, hallID domainhalls.HallID, from, to time.Time) ([]*domainbooking.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fromDay := domainpricing.Midnight(from)
	toDay := domainpricing.Midnight(to)
	var out []*domainbooking.Booking
	for _, b := range r.items {
		if b.HallID != hallID {
			continue
		}
		if b.EventDate.Before(fromDay) || b.EventDate.After(toDay) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domainbooking.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b.Version++
	r.items[b.ID] = b
	return nil
}
