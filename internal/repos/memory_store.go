package repos

import (
	"database/sql"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"muraqqa/internal/domain"
	"muraqqa/internal/services"
)

// MemStore is the offline/local-state strategy: the same store contracts as
// the sqlx repos, backed by maps. Selected with STORE=memory; also the
// fastest backend for service tests.
type MemStore struct {
	mu        sync.RWMutex
	artists   map[string]domain.Artist
	artworks  map[string]domain.Artwork
	carts     map[string][]domain.LineItem // cartID -> lines, insertion order
	orders    map[string]domain.Order
	discounts map[string]domain.Discount
	users     map[string]domain.User // by id
	sessions  map[string]string      // sid -> userID
	favorites map[string][]string    // sessionID -> artwork ids
}

func NewMemStore() *MemStore {
	return &MemStore{
		artists:   map[string]domain.Artist{},
		artworks:  map[string]domain.Artwork{},
		carts:     map[string][]domain.LineItem{},
		orders:    map[string]domain.Order{},
		discounts: map[string]domain.Discount{},
		users:     map[string]domain.User{},
		sessions:  map[string]string{},
		favorites: map[string][]string{},
	}
}

// SeedDemo loads the same demo catalog the SQLite seed uses.
func (m *MemStore) SeedDemo() *MemStore {
	m.PutArtist(domain.Artist{ID: "a-sadequain", Name: "Sadequain (Tribute)", Specialty: "Abstract Calligraphy"})
	m.PutArtist(domain.Artist{ID: "a-ahmed-khan", Name: "Ahmed Khan", Specialty: "Islamic Calligraphy"})
	m.PutArtist(domain.Artist{ID: "a-alia-syed", Name: "Alia Syed", Specialty: "Contemporary Miniature"})
	m.PutArtwork(domain.Artwork{ID: "art-001", ArtistID: "a-ahmed-khan", ArtistName: "Ahmed Khan",
		Title: "Surah An-Noor", Category: "Calligraphy", Medium: "Oil and silver leaf", Year: 2023, Price: 450000, InStock: true, ProvenanceID: "PRV-1001"})
	m.PutArtwork(domain.Artwork{ID: "art-002", ArtistID: "a-sadequain", ArtistName: "Sadequain (Tribute)",
		Title: "Walled City Dusk", Category: "Abstract", Medium: "Oil on canvas", Year: 2022, Price: 1250000, InStock: true})
	m.PutArtwork(domain.Artwork{ID: "art-003", ArtistID: "a-alia-syed", ArtistName: "Alia Syed",
		Title: "Court of the Scribe", Category: "Miniature", Medium: "Gouache on wasli", Year: 2024, Price: 780000, InStock: true})
	m.PutDiscount(domain.Discount{Code: "MURAQQA10", Kind: domain.DiscountPercentage, Value: 10})
	m.PutDiscount(domain.Discount{Code: "EIDMUBARAK", Kind: domain.DiscountFixed, Value: 50000})
	m.PutUser(domain.User{ID: "u-collector", Email: "collector@muraqqa.test", Name: "Collector", Role: "USER"}, "Passw0rd!")
	m.PutUser(domain.User{ID: "u-curator", Email: "curator@muraqqa.test", Name: "Curator", Role: "ADMIN"}, "Passw0rd!")
	return m
}

func (m *MemStore) PutArtist(a domain.Artist) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.artists[a.ID] = a
}

func (m *MemStore) PutArtwork(a domain.Artwork) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if a.CreatedAt == "" {
		a.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	m.artworks[a.ID] = a
}

func (m *MemStore) PutDiscount(d domain.Discount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.discounts[d.Code] = d
}

func (m *MemStore) PutUser(u domain.User, password string) {
	h, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u.Hash = string(h)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

// --- ArtworkStore ---

func (m *MemStore) Get(id string) (domain.Artwork, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.artworks[id]
	if !ok {
		return domain.Artwork{}, sql.ErrNoRows
	}
	return a, nil
}

func (m *MemStore) List(category, q string, limit, offset int) ([]domain.Artwork, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Artwork
	for _, a := range m.artworks {
		if category != "" && a.Category != category {
			continue
		}
		if q != "" && !containsFold(a.Title, q) && !containsFold(a.ArtistName, q) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) Availability(id string) (domain.Availability, error) {
	a, err := m.Get(id)
	if err != nil {
		return domain.Availability{}, err
	}
	return domain.Availability{Price: domain.Paisa(a.Price), InStock: a.InStock}, nil
}

func (m *MemStore) MarkSold(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artworks[id]
	if !ok {
		return sql.ErrNoRows
	}
	if !a.InStock {
		return services.ErrOutOfStock
	}
	a.InStock = false
	m.artworks[id] = a
	return nil
}

func (m *MemStore) Restore(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.artworks[id]
	if !ok {
		return sql.ErrNoRows
	}
	a.InStock = true
	m.artworks[id] = a
	return nil
}

// --- ArtistStore ---

func (m *MemStore) ListArtists() ([]domain.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Artist
	for _, a := range m.artists {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemStore) GetArtist(id string) (domain.Artist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.artists[id]
	if !ok {
		return domain.Artist{}, sql.ErrNoRows
	}
	return a, nil
}

// --- CartStore ---

func (m *MemStore) EnsureCart(sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[sessionID]; !ok {
		m.carts[sessionID] = nil
	}
	return sessionID, nil
}

func (m *MemStore) InsertLine(cartID string, l domain.LineItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = append(m.carts[cartID], l)
	return nil
}

func (m *MemStore) RemoveLine(cartID, lineID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	lines := m.carts[cartID]
	kept := lines[:0]
	for _, l := range lines {
		if l.ID != lineID {
			kept = append(kept, l)
		}
	}
	m.carts[cartID] = kept
	return nil
}

func (m *MemStore) Lines(cartID string) ([]domain.LineItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.LineItem, len(m.carts[cartID]))
	copy(out, m.carts[cartID])
	return out, nil
}

func (m *MemStore) ClearCart(cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.carts[cartID] = nil
	return nil
}

// --- OrderStore ---

func (m *MemStore) CreateOrder(o domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := make([]domain.LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	m.orders[o.ID] = o
	return nil
}

func (m *MemStore) GetOrder(id string) (domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return domain.Order{}, sql.ErrNoRows
	}
	items := make([]domain.LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o, nil
}

func (m *MemStore) ListByBuyer(buyerRef string) ([]domain.Order, error) {
	return m.listOrders(func(o domain.Order) bool { return buyerRef != "" && o.BuyerRef == buyerRef })
}

func (m *MemStore) ListBySession(sessionID string) ([]domain.Order, error) {
	return m.listOrders(func(o domain.Order) bool { return o.SessionID == sessionID })
}

func (m *MemStore) ListLatest(limit int) ([]domain.Order, error) {
	out, _ := m.listOrders(func(domain.Order) bool { return true })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MemStore) listOrders(match func(domain.Order) bool) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Order
	for _, o := range m.orders {
		if match(o) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *MemStore) UpdateStatus(id string, status domain.OrderStatus, extra domain.StatusExtra) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return sql.ErrNoRows
	}
	o.Status = status
	if extra.PaymentRef != "" {
		o.PaymentRef = extra.PaymentRef
	}
	if extra.PaidAt != "" {
		o.PaidAt = extra.PaidAt
	}
	if extra.TrackingRef != "" {
		o.TrackingRef = extra.TrackingRef
	}
	m.orders[id] = o
	return nil
}

// --- DiscountStore ---

func (m *MemStore) FindDiscount(code string) (domain.Discount, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.discounts[code]
	return d, ok, nil
}

// --- UserStore ---

func (m *MemStore) ByEmail(email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MemStore) BindSession(sid, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sid] = userID
	return nil
}

func (m *MemStore) SessionUser(sid string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	uid, ok := m.sessions[sid]
	if !ok || uid == "" {
		return nil, sql.ErrNoRows
	}
	u, ok := m.users[uid]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cp := u
	return &cp, nil
}

func (m *MemStore) UnbindSession(sid string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sid)
	return nil
}

// --- FavoriteStore ---

func (m *MemStore) SaveFavorite(sessionID, artworkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.favorites[sessionID] {
		if id == artworkID {
			return nil
		}
	}
	m.favorites[sessionID] = append(m.favorites[sessionID], artworkID)
	return nil
}

func (m *MemStore) RemoveFavorite(sessionID, artworkID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.favorites[sessionID]
	kept := ids[:0]
	for _, id := range ids {
		if id != artworkID {
			kept = append(kept, id)
		}
	}
	m.favorites[sessionID] = kept
	return nil
}

func (m *MemStore) ListFavorites(sessionID string) ([]domain.Artwork, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []domain.Artwork
	for _, id := range m.favorites[sessionID] {
		if a, ok := m.artworks[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
