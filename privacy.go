// privacy.go - contact throttling keyed on hashed client addresses
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// throttle limits contact submissions per client. Clients are identified by
// a salted hash of their IP; raw addresses are never stored or logged.
type throttle struct {
	mu     sync.Mutex
	salt   string
	limit  int
	window time.Duration
	hits   map[string][]time.Time
	now    func() time.Time
}

func newThrottle(limit int, window time.Duration) *throttle {
	return &throttle{
		salt:   generateSalt(),
		limit:  limit,
		window: window,
		hits:   make(map[string][]time.Time),
		now:    time.Now,
	}
}

func generateSalt() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate hashing salt:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address for privacy (consistent per IP for the life of the process)
func (t *throttle) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + t.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

// limited reports whether ip has used up its submissions for the window.
// It does not count as a submission.
func (t *throttle) limited(ip string) bool {
	key := t.hashIP(ip)
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	recent := t.recent(t.hits[key], now)
	if len(recent) == 0 {
		delete(t.hits, key)
		return false
	}
	t.hits[key] = recent
	return len(recent) >= t.limit
}

// record counts a submission from ip. Handlers call it once a message has
// passed validation, so rejected input never uses up the quota.
func (t *throttle) record(ip string) {
	key := t.hashIP(ip)
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.hits[key] = append(t.recent(t.hits[key], now), now)
}

func (t *throttle) recent(hits []time.Time, now time.Time) []time.Time {
	cutoff := now.Add(-t.window)
	i := 0
	for i < len(hits) && !hits[i].After(cutoff) {
		i++
	}
	return hits[i:]
}

// sweep forgets clients with no submissions inside the window.
func (t *throttle) sweep() int {
	now := t.now()

	t.mu.Lock()
	defer t.mu.Unlock()

	removed := 0
	for key, hits := range t.hits {
		if len(t.recent(hits, now)) == 0 {
			delete(t.hits, key)
			removed++
		}
	}
	return removed
}

// run sweeps every window until stop is closed.
func (t *throttle) run(stop <-chan struct{}) {
	ticker := time.NewTicker(t.window)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := t.sweep(); n > 0 {
				log.Printf("Privacy cleanup: forgot %d contact clients", n)
			}
		}
	}
}

// middleware answers clients that are over the limit with deny.
func (t *throttle) middleware(deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if t.limited(c.ClientIP()) {
			log.Printf("Contact throttled for %s", t.hashIP(c.ClientIP()))
			deny(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

func denyJSON(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, gin.H{
		"message": "Too many messages, please try again later",
	})
}

// streamLimit caps the backdrop streams open at once, both in total and per
// hashed client address.
type streamLimit struct {
	slots     chan struct{}
	perClient int
	hash      func(ip string) string

	mu   sync.Mutex
	open map[string]int
}

func newStreamLimit(total, perClient int, hash func(string) string) *streamLimit {
	return &streamLimit{
		slots:     make(chan struct{}, total),
		perClient: perClient,
		hash:      hash,
		open:      make(map[string]int),
	}
}

// acquire reserves a stream for ip. The returned release must be called
// once the stream ends. The status is the HTTP status to refuse with when
// ok is false.
func (l *streamLimit) acquire(ip string) (release func(), status int, ok bool) {
	key := l.hash(ip)

	l.mu.Lock()
	if l.open[key] >= l.perClient {
		l.mu.Unlock()
		return nil, http.StatusTooManyRequests, false
	}
	select {
	case l.slots <- struct{}{}:
	default:
		l.mu.Unlock()
		return nil, http.StatusServiceUnavailable, false
	}
	l.open[key]++
	l.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			if l.open[key]--; l.open[key] <= 0 {
				delete(l.open, key)
			}
			l.mu.Unlock()
			<-l.slots
		})
	}, 0, true
}

// middleware refuses streams over either cap and holds the reservation for
// the life of the request.
func (l *streamLimit) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		release, status, ok := l.acquire(c.ClientIP())
		if !ok {
			log.Printf("Backdrop stream refused for %s (%d)", l.hash(c.ClientIP()), status)
			c.AbortWithStatusJSON(status, gin.H{
				"message": "Too many open backdrop streams, please try again later",
			})
			return
		}
		defer release()
		c.Next()
	}
}
