package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"society-backend/internal/cache"
	"society-backend/internal/events"
	"society-backend/internal/metrics"
	"society-backend/internal/models"
)

// DashboardStats are the four live counters on the dashboard, always
// recomputed from the full record set rather than adjusted incrementally.
type DashboardStats struct {
	TotalFlats      int `json:"total_flats"`
	ActiveMembers   int `json:"active_members"`
	TotalCollected  int `json:"total_collected"`
	PendingPayments int `json:"pending_payments"`
}

// Activity is one entry in the recent-activity feed.
type Activity struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"` // success or pending
	At          time.Time `json:"at"`
}

const activityFeedSize = 10

// DashboardService derives the summary counters and the activity feed
// from change events. Start launches the recompute loop; Stop must be
// called on shutdown to release the hub subscription.
type DashboardService struct {
	Bills  BillStore
	Owners OwnerStore
	Users  UserStore
	Hub    *events.Hub

	mu         sync.Mutex
	activities []Activity
	sub        *events.Subscription
	done       chan struct{}
}

func NewDashboardService(bills BillStore, owners OwnerStore, users UserStore, hub *events.Hub) *DashboardService {
	return &DashboardService{
		Bills:  bills,
		Owners: owners,
		Users:  users,
		Hub:    hub,
	}
}

// Stats computes the dashboard counters, serving from the Redis cache
// when a fresh copy exists.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if data, ok := cache.GetDashboardStats(ctx); ok {
		stats := &DashboardStats{}
		if err := json.Unmarshal(data, stats); err == nil {
			return stats, nil
		}
	}

	stats, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(stats); err == nil {
		cache.SetDashboardStats(ctx, data)
	}
	return stats, nil
}

func (s *DashboardService) compute(ctx context.Context) (*DashboardStats, error) {
	totalFlats, err := s.Owners.Count(ctx)
	if err != nil {
		return nil, err
	}

	activeMembers, err := s.Users.CountByRole(ctx, models.RoleMember)
	if err != nil {
		return nil, err
	}

	agg, err := s.Bills.Aggregates(ctx)
	if err != nil {
		return nil, err
	}

	for status, count := range agg.StatusCounts {
		metrics.BillsByStatus.WithLabelValues(status).Set(float64(count))
	}
	metrics.MaintenanceCollectedTotal.Set(float64(agg.TotalCollected))

	return &DashboardStats{
		TotalFlats:      totalFlats,
		ActiveMembers:   activeMembers,
		TotalCollected:  agg.TotalCollected,
		PendingPayments: agg.PendingCount,
	}, nil
}

// RecentActivities returns a snapshot of the latest activity entries,
// newest first.
func (s *DashboardService) RecentActivities() []Activity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Start subscribes to the event hub and keeps counters, cache and the
// activity feed current.
func (s *DashboardService) Start() {
	s.sub = s.Hub.Subscribe(64)
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		for e := range s.sub.C {
			s.record(e)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			cache.InvalidateDashboardStats(ctx)
			if stats, err := s.compute(ctx); err != nil {
				log.Printf("[Dashboard] recompute failed: %v", err)
			} else if data, err := json.Marshal(stats); err == nil {
				cache.SetDashboardStats(ctx, data)
			}
			cancel()
		}
	}()
}

// Stop cancels the hub subscription and waits for the loop to drain.
func (s *DashboardService) Stop() {
	if s.sub == nil {
		return
	}
	s.sub.Close()
	<-s.done
}

func (s *DashboardService) record(e events.Event) {
	var a Activity
	switch e.Kind {
	case events.KindOwnerRegistered:
		a = Activity{
			Title:       "New Owner Registration",
			Description: fmt.Sprintf("%s (Flat %s) registered", e.OwnerName, e.FlatNumber),
			Status:      "success",
		}
	case events.KindBillCreated:
		a = Activity{
			Title:       "Bill Generated",
			Description: fmt.Sprintf("Flat %s billed ₹%d", e.FlatNumber, e.Amount),
			Status:      "pending",
		}
	case events.KindBillSubmitted:
		a = Activity{
			Title:       "Payment Submitted",
			Description: fmt.Sprintf("Flat %s submitted ₹%d", e.FlatNumber, e.Amount),
			Status:      "pending",
		}
	case events.KindBillPaid:
		a = Activity{
			Title:       "Maintenance Paid",
			Description: fmt.Sprintf("Flat %s paid ₹%d", e.FlatNumber, e.Amount),
			Status:      "success",
		}
	case events.KindConfirmationApproved:
		a = Activity{
			Title:       "Payment Approved",
			Description: fmt.Sprintf("Confirmation for flat %s approved", e.FlatNumber),
			Status:      "success",
		}
	default:
		return
	}
	a.At = e.At

	s.mu.Lock()
	s.activities = append([]Activity{a}, s.activities...)
	if len(s.activities) > activityFeedSize {
		s.activities = s.activities[:activityFeedSize]
	}
	s.mu.Unlock()
}
