// Package email simulates an email channel with delivery tracking.
// Sends are recorded in memory and engagement (opens, clicks,
// conversions) is drawn from a causally-gated funnel so downstream
// stats behave like a real campaign's.
package email

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lumenretail/marketing-agent/internal/campaign"
)

// Email is a sent email with engagement tracking
type Email struct {
	ID          string     `json:"id"`
	CampaignID  string     `json:"campaign_id"`
	ToEmail     string     `json:"to_email"`
	ToName      string     `json:"to_name"`
	Subject     string     `json:"subject"`
	Body        string     `json:"content"`
	SentAt      time.Time  `json:"sent_at"`
	Opened      bool       `json:"opened"`
	OpenedAt    *time.Time `json:"opened_at"`
	Clicked     bool       `json:"clicked"`
	ClickedAt   *time.Time `json:"clicked_at"`
	Converted   bool       `json:"converted"`
	ConvertedAt *time.Time `json:"converted_at"`
}

// Recipient identifies one email recipient
type Recipient struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// TextGenerator produces copy for personalization. The provider chain
// in internal/textgen satisfies this.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Service simulates sending and tracks every email in memory
type Service struct {
	mu             sync.RWMutex
	emails         map[string]*Email
	order          []string
	byCampaign     map[string][]string
	contexts       map[string]campaign.Context
	counter        int
	rng            *rand.Rand
	text           TextGenerator
	templates      *TemplateService
	personalizeTop int
}

// Option configures the email service
type Option func(*Service)

// WithSeed pins the engagement random source for reproducible runs
func WithSeed(seed int64) Option {
	return func(s *Service) { s.rng = rand.New(rand.NewSource(seed)) }
}

// WithPersonalizedBatch sets how many leading recipients of a bulk send
// get individually generated copy (default 3)
func WithPersonalizedBatch(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.personalizeTop = n
		}
	}
}

// NewService creates an email service. gen may be nil, in which case
// every send uses the template fallback copy.
func NewService(gen TextGenerator, opts ...Option) *Service {
	s := &Service{
		emails:         make(map[string]*Email),
		byCampaign:     make(map[string][]string),
		contexts:       make(map[string]campaign.Context),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		text:           gen,
		templates:      NewTemplateService(),
		personalizeTop: 3,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Send records a single email and draws its engagement outcome.
// Opens happen 45% of the time; clicks only on opened mail (25% of
// opens); conversions only on clicked mail (35% of clicks).
func (s *Service) Send(toEmail, toName, subject, body, campaignID string) *Email {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++
	now := time.Now()

	opened := s.rng.Float64() < 0.45
	clicked := opened && s.rng.Float64() < 0.25
	converted := clicked && s.rng.Float64() < 0.35

	e := &Email{
		ID:         fmt.Sprintf("EMAIL%06d", s.counter),
		CampaignID: campaignID,
		ToEmail:    toEmail,
		ToName:     toName,
		Subject:    subject,
		Body:       body,
		SentAt:     now,
		Opened:     opened,
		Clicked:    clicked,
		Converted:  converted,
	}
	if opened {
		t := now
		e.OpenedAt = &t
	}
	if clicked {
		t := now
		e.ClickedAt = &t
	}
	if converted {
		t := now
		e.ConvertedAt = &t
	}

	s.emails[e.ID] = e
	s.order = append(s.order, e.ID)
	s.byCampaign[campaignID] = append(s.byCampaign[campaignID], e.ID)
	return e
}

// SendBulk sends to every recipient. The first few recipients get
// personalized subject and body copy from the text generator; everyone
// else gets the base template rendered with their recipient fields.
func (s *Service) SendBulk(ctx context.Context, recipients []Recipient, subject, body, campaignID string, cc *campaign.Context) []*Email {
	if cc != nil {
		s.mu.Lock()
		s.contexts[campaignID] = *cc
		s.mu.Unlock()
	}

	emails := make([]*Email, 0, len(recipients))
	for idx, r := range recipients {
		sendSubject := subject
		sendBody := s.renderBase(body, r, cc)

		if idx < s.personalizeTop && cc != nil {
			sendBody = s.personalizeBody(ctx, r.Name, *cc, body)
			sendSubject = s.personalizeSubject(ctx, r.Name, *cc, subject)
		}

		emails = append(emails, s.Send(r.Email, r.Name, sendSubject, sendBody, campaignID))
	}
	return emails
}

// renderBase runs the base body through the Liquid template engine with
// recipient and campaign bindings.
func (s *Service) renderBase(body string, r Recipient, cc *campaign.Context) string {
	bindings := map[string]interface{}{
		"name":       r.Name,
		"first_name": firstName(r.Name),
		"email":      r.Email,
	}
	if cc != nil {
		bindings["store_name"] = cc.StoreName
		bindings["location"] = cc.Location
		bindings["offers"] = cc.Offers
	}
	return s.templates.Render("", body, bindings)
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

// Campaign returns the stored context for a campaign, if any
func (s *Service) Campaign(campaignID string) (campaign.Context, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cc, ok := s.contexts[campaignID]
	return cc, ok
}

// Get returns an email by ID, or nil if not found
func (s *Service) Get(id string) *Email {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emails[id]
}

// CampaignEmails returns all emails for a campaign in send order
func (s *Service) CampaignEmails(campaignID string) []*Email {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byCampaign[campaignID]
	out := make([]*Email, 0, len(ids))
	for _, id := range ids {
		if e, ok := s.emails[id]; ok {
			out = append(out, e)
		}
	}
	return out
}

// All returns every sent email in send order
func (s *Service) All() []*Email {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Email, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.emails[id])
	}
	return out
}

// Recent returns the most recently sent emails, newest first
func (s *Service) Recent(limit int) []*Email {
	all := s.All()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].SentAt.After(all[j].SentAt)
	})
	if limit > 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

// Stats aggregates funnel performance for a campaign
type Stats struct {
	TotalSent      int     `json:"total_sent"`
	Opened         int     `json:"opened"`
	Clicked        int     `json:"clicked"`
	Converted      int     `json:"converted"`
	OpenRate       float64 `json:"open_rate"`
	ClickRate      float64 `json:"click_rate"`
	ConversionRate float64 `json:"conversion_rate"`
}

// CampaignStats computes funnel stats for a campaign. Rates are
// percentages of total sent, rounded to two decimals.
func (s *Service) CampaignStats(campaignID string) Stats {
	emails := s.CampaignEmails(campaignID)

	var st Stats
	st.TotalSent = len(emails)
	if st.TotalSent == 0 {
		return st
	}

	for _, e := range emails {
		if e.Opened {
			st.Opened++
		}
		if e.Clicked {
			st.Clicked++
		}
		if e.Converted {
			st.Converted++
		}
	}

	total := float64(st.TotalSent)
	st.OpenRate = round2(float64(st.Opened) / total * 100)
	st.ClickRate = round2(float64(st.Clicked) / total * 100)
	st.ConversionRate = round2(float64(st.Converted) / total * 100)
	return st
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
