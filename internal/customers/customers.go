// Package customers provides the simulated customer database that the
// deployment layer targets. Customers are generated with realistic
// segment-dependent purchase behavior and contact opt-ins.
package customers

import (
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Segment classifies a customer's purchase behavior
type Segment string

const (
	SegmentNew        Segment = "new"
	SegmentOccasional Segment = "occasional"
	SegmentFrequent   Segment = "frequent"
	SegmentVIP        Segment = "vip"
)

// Segments lists every customer segment
func Segments() []Segment {
	return []Segment{SegmentNew, SegmentOccasional, SegmentFrequent, SegmentVIP}
}

// Customer is a simulated customer record
type Customer struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Segment       Segment    `json:"segment"`
	Location      string     `json:"location"`
	AgeGroup      string     `json:"age_group"`
	Interests     []string   `json:"interests"`
	PurchaseCount int        `json:"purchase_history"`
	TotalSpent    float64    `json:"total_spent"`
	LastPurchase  *time.Time `json:"last_purchase_date"`
	EmailOptIn    bool       `json:"email_opt_in"`
	SMSOptIn      bool       `json:"sms_opt_in"`
	CreatedAt     time.Time  `json:"created_at"`
}

var firstNames = []string{
	"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
	"William", "Barbara", "David", "Elizabeth", "Richard", "Susan", "Joseph", "Jessica",
	"Thomas", "Sarah", "Charles", "Karen", "Christopher", "Nancy", "Daniel", "Lisa",
	"Matthew", "Betty", "Anthony", "Margaret", "Mark", "Sandra", "Donald", "Ashley",
	"Steven", "Kimberly", "Paul", "Emily", "Andrew", "Donna", "Joshua", "Michelle",
	"Kenneth", "Carol", "Kevin", "Amanda", "Brian", "Dorothy", "George", "Melissa",
	"Timothy", "Deborah", "Ronald", "Stephanie", "Edward", "Rebecca", "Jason", "Sharon",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
	"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Perez", "Thompson",
	"White", "Harris", "Sanchez", "Clark", "Ramirez", "Lewis", "Robinson", "Walker",
	"Young", "Allen", "King", "Wright", "Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall", "Rivera", "Campbell", "Mitchell",
}

var locations = []string{
	"New York, NY", "Los Angeles, CA", "Chicago, IL", "Houston, TX", "Phoenix, AZ",
	"Philadelphia, PA", "San Antonio, TX", "San Diego, CA", "Dallas, TX", "San Jose, CA",
	"Austin, TX", "Jacksonville, FL", "Fort Worth, TX", "Columbus, OH", "Charlotte, NC",
	"San Francisco, CA", "Indianapolis, IN", "Seattle, WA", "Denver, CO", "Boston, MA",
}

var interestPool = []string{
	"fashion", "electronics", "home_decor", "sports", "books", "beauty", "fitness",
	"food", "travel", "photography", "gaming", "music", "art", "gardening", "pets",
	"outdoor", "technology", "health", "cooking", "crafts",
}

var ageGroups = []string{"18-25", "26-35", "36-45", "46-55", "56+"}

// Database holds generated customers in memory. Safe for concurrent reads.
type Database struct {
	mu        sync.RWMutex
	customers map[string]*Customer
	order     []string
}

// Option configures customer generation
type Option func(*options)

type options struct {
	seed int64
}

// WithSeed pins the random source so generated data is reproducible.
// A zero seed falls back to wall-clock seeding.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// NewDatabase generates count customers. Segment membership is weighted
// 40% new, 30% occasional, 20% frequent, 10% vip; purchase history and
// spend ranges follow the segment.
func NewDatabase(count int, opts ...Option) *Database {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.seed == 0 {
		o.seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(o.seed))

	db := &Database{
		customers: make(map[string]*Customer, count),
		order:     make([]string, 0, count),
	}
	db.generate(count, rng)
	return db
}

func (db *Database) generate(count int, rng *rand.Rand) {
	now := time.Now()
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("CUST%05d", i+1)
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]

		segment := pickSegment(rng)

		var purchases int
		var spent float64
		var lastPurchase *time.Time
		switch segment {
		case SegmentNew:
			// Never bought anything yet
		case SegmentOccasional:
			purchases = 1 + rng.Intn(5)
			spent = round2(50 + rng.Float64()*450)
			t := now.AddDate(0, 0, -(30 + rng.Intn(151)))
			lastPurchase = &t
		case SegmentFrequent:
			purchases = 6 + rng.Intn(15)
			spent = round2(500 + rng.Float64()*1500)
			t := now.AddDate(0, 0, -(1 + rng.Intn(60)))
			lastPurchase = &t
		case SegmentVIP:
			purchases = 21 + rng.Intn(80)
			spent = round2(2000 + rng.Float64()*8000)
			t := now.AddDate(0, 0, -(1 + rng.Intn(30)))
			lastPurchase = &t
		}

		c := &Customer{
			ID:            id,
			Name:          first + " " + last,
			Email:         strings.ToLower(first) + "." + strings.ToLower(last) + "@email.com",
			Phone:         fmt.Sprintf("555-%03d-%04d", 100+rng.Intn(900), 1000+rng.Intn(9000)),
			Segment:       segment,
			Location:      locations[rng.Intn(len(locations))],
			AgeGroup:      ageGroups[rng.Intn(len(ageGroups))],
			Interests:     pickInterests(rng),
			PurchaseCount: purchases,
			TotalSpent:    spent,
			LastPurchase:  lastPurchase,
			EmailOptIn:    rng.Float64() > 0.15, // 85% opt-in
			SMSOptIn:      rng.Float64() > 0.40, // 60% opt-in
			CreatedAt:     now,
		}

		db.customers[id] = c
		db.order = append(db.order, id)
	}
}

// pickSegment draws a segment with weights 0.4/0.3/0.2/0.1
func pickSegment(rng *rand.Rand) Segment {
	r := rng.Float64()
	switch {
	case r < 0.4:
		return SegmentNew
	case r < 0.7:
		return SegmentOccasional
	case r < 0.9:
		return SegmentFrequent
	default:
		return SegmentVIP
	}
}

// pickInterests samples 2-5 distinct interests
func pickInterests(rng *rand.Rand) []string {
	n := 2 + rng.Intn(4)
	perm := rng.Perm(len(interestPool))
	out := make([]string, 0, n)
	for _, idx := range perm[:n] {
		out = append(out, interestPool[idx])
	}
	return out
}

// Get returns a customer by ID, or nil if not found
func (db *Database) Get(id string) *Customer {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.customers[id]
}

// All returns every customer in generation order
func (db *Database) All() []*Customer {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := make([]*Customer, 0, len(db.order))
	for _, id := range db.order {
		out = append(out, db.customers[id])
	}
	return out
}

// BySegment returns customers in the given segment
func (db *Database) BySegment(segment Segment) []*Customer {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []*Customer
	for _, id := range db.order {
		if c := db.customers[id]; c.Segment == segment {
			out = append(out, c)
		}
	}
	return out
}

// WithEmailOptIn returns customers who accepted email marketing
func (db *Database) WithEmailOptIn() []*Customer {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var out []*Customer
	for _, id := range db.order {
		if c := db.customers[id]; c.EmailOptIn {
			out = append(out, c)
		}
	}
	return out
}

// ByInterests returns customers matching any of the given interests
func (db *Database) ByInterests(interests []string) []*Customer {
	db.mu.RLock()
	defer db.mu.RUnlock()

	want := make(map[string]bool, len(interests))
	for _, i := range interests {
		want[i] = true
	}

	var out []*Customer
	for _, id := range db.order {
		c := db.customers[id]
		for _, i := range c.Interests {
			if want[i] {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// ByLocation returns customers whose location contains the given substring
// (case-insensitive)
func (db *Database) ByLocation(location string) []*Customer {
	db.mu.RLock()
	defer db.mu.RUnlock()

	needle := strings.ToLower(location)
	var out []*Customer
	for _, id := range db.order {
		if c := db.customers[id]; strings.Contains(strings.ToLower(c.Location), needle) {
			out = append(out, c)
		}
	}
	return out
}

// Stats aggregates the customer database
type Stats struct {
	TotalCustomers int             `json:"total_customers"`
	BySegment      map[Segment]int `json:"by_segment"`
	EmailOptIn     int             `json:"email_opt_in"`
	SMSOptIn       int             `json:"sms_opt_in"`
	TotalRevenue   float64         `json:"total_revenue"`
	AverageSpent   float64         `json:"average_spent"`
}

// Statistics computes aggregate stats over the whole database
func (db *Database) Statistics() Stats {
	db.mu.RLock()
	defer db.mu.RUnlock()

	s := Stats{
		BySegment: map[Segment]int{
			SegmentNew:        0,
			SegmentOccasional: 0,
			SegmentFrequent:   0,
			SegmentVIP:        0,
		},
	}

	var revenue float64
	for _, id := range db.order {
		c := db.customers[id]
		s.TotalCustomers++
		s.BySegment[c.Segment]++
		if c.EmailOptIn {
			s.EmailOptIn++
		}
		if c.SMSOptIn {
			s.SMSOptIn++
		}
		revenue += c.TotalSpent
	}

	s.TotalRevenue = round2(revenue)
	if s.TotalCustomers > 0 {
		s.AverageSpent = round2(revenue / float64(s.TotalCustomers))
	}
	return s
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
