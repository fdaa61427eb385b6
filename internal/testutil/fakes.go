// Package testutil provides in-memory implementations of the repository
// interfaces for tests that exercise services and handlers without MongoDB.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"robe-backend/internal/model"
	apperrors "robe-backend/pkg/errors"
)

// FakeCouponRepo is an in-memory CouponRepository. Redeem uses the same
// flip-only-if-unused rule as the MongoDB implementation, guarded by a mutex,
// so concurrency tests observe the single-redemption guarantee.
type FakeCouponRepo struct {
	mu      sync.Mutex
	codes   map[string]bool
	coupons []*model.Coupon
}

func NewFakeCouponRepo() *FakeCouponRepo {
	return &FakeCouponRepo{codes: make(map[string]bool)}
}

func (f *FakeCouponRepo) ReserveCode(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.codes[code] {
		return apperrors.ErrCouponCodeExists
	}
	f.codes[code] = true
	return nil
}

func (f *FakeCouponRepo) ReleaseCode(_ context.Context, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.codes, code)
	return nil
}

func (f *FakeCouponRepo) Create(_ context.Context, coupon *model.Coupon) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	coupon.ID = primitive.NewObjectID()
	f.coupons = append(f.coupons, coupon)
	return nil
}

func (f *FakeCouponRepo) CreateMany(ctx context.Context, coupons []*model.Coupon) error {
	for _, c := range coupons {
		if err := f.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeCouponRepo) FindUnusedByCode(_ context.Context, code string) (*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.Code == code && !c.Used {
			copied := *c
			return &copied, nil
		}
	}
	return nil, apperrors.ErrCouponNotFound
}

func (f *FakeCouponRepo) CountByCode(_ context.Context, code string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countLocked(code), nil
}

func (f *FakeCouponRepo) countLocked(code string) int64 {
	var n int64
	for _, c := range f.coupons {
		if c.Code == code {
			n++
		}
	}
	return n
}

func (f *FakeCouponRepo) Redeem(_ context.Context, code string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.coupons {
		if c.Code == code && !c.Used {
			c.Used = true
			usedAt := at
			c.UsedAt = &usedAt
			return nil
		}
	}
	if f.countLocked(code) > 0 {
		return apperrors.ErrCouponAlreadyUsed
	}
	return apperrors.ErrCouponNotFound
}

func (f *FakeCouponRepo) List(_ context.Context) ([]*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Coupon, 0, len(f.coupons))
	for _, c := range f.coupons {
		copied := *c
		out = append(out, &copied)
	}
	return out, nil
}

func (f *FakeCouponRepo) Delete(_ context.Context, id primitive.ObjectID) (*model.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.coupons {
		if c.ID == id {
			f.coupons = append(f.coupons[:i], f.coupons[i+1:]...)
			return c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// Snapshot copies the current coupon documents so a test can restore them
// after a simulated transaction abort.
func (f *FakeCouponRepo) Snapshot() []model.Coupon {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Coupon, 0, len(f.coupons))
	for _, c := range f.coupons {
		out = append(out, *c)
	}
	return out
}

// Restore replaces the coupon documents with a snapshot.
func (f *FakeCouponRepo) Restore(snapshot []model.Coupon) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.coupons = f.coupons[:0]
	for i := range snapshot {
		copied := snapshot[i]
		f.coupons = append(f.coupons, &copied)
	}
}

// CodeReserved reports whether a code is still held in the registry.
func (f *FakeCouponRepo) CodeReserved(code string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.codes[code]
}

// FakeOrderRepo is an in-memory OrderRepository.
type FakeOrderRepo struct {
	mu        sync.Mutex
	orders    []*model.Order
	CreateErr error
}

func NewFakeOrderRepo() *FakeOrderRepo {
	return &FakeOrderRepo{}
}

func (f *FakeOrderRepo) Create(_ context.Context, order *model.Order) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return primitive.NilObjectID, f.CreateErr
	}
	order.ID = primitive.NewObjectID()
	f.orders = append(f.orders, order)
	return order.ID, nil
}

func (f *FakeOrderRepo) ListNewestFirst(_ context.Context) ([]*model.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Order, len(f.orders))
	copy(out, f.orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Count returns how many orders have been recorded.
func (f *FakeOrderRepo) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.orders)
}

// FakeUserRepo is an in-memory UserRepository.
type FakeUserRepo struct {
	mu    sync.Mutex
	users []*model.User
}

func NewFakeUserRepo(users ...*model.User) *FakeUserRepo {
	f := &FakeUserRepo{}
	for _, u := range users {
		u.ID = primitive.NewObjectID()
		f.users = append(f.users, u)
	}
	return f
}

func (f *FakeUserRepo) UpsertByEmail(_ context.Context, user *model.User) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			// Repeat login refreshes lastLogin only
			u.LastLogin = user.LastLogin
			return false, nil
		}
	}
	user.ID = primitive.NewObjectID()
	f.users = append(f.users, user)
	return true, nil
}

func (f *FakeUserRepo) List(_ context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *FakeUserRepo) GetRoleByEmail(_ context.Context, email string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u.Role, nil
		}
	}
	return "", apperrors.ErrNotFound
}

// FakeProductRepo is an in-memory ProductRepository.
type FakeProductRepo struct {
	mu   sync.Mutex
	ids  []primitive.ObjectID
	docs map[primitive.ObjectID]bson.M
}

func NewFakeProductRepo() *FakeProductRepo {
	return &FakeProductRepo{docs: make(map[primitive.ObjectID]bson.M)}
}

func (f *FakeProductRepo) Create(_ context.Context, doc bson.M) (primitive.ObjectID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := primitive.NewObjectID()
	stored := bson.M{"_id": id}
	for k, v := range doc {
		stored[k] = v
	}
	f.ids = append(f.ids, id)
	f.docs[id] = stored
	return id, nil
}

func (f *FakeProductRepo) List(_ context.Context) ([]bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]bson.M, 0, len(f.ids))
	for _, id := range f.ids {
		out = append(out, f.docs[id])
	}
	return out, nil
}

func (f *FakeProductRepo) GetByID(_ context.Context, id primitive.ObjectID) (bson.M, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return doc, nil
}

func (f *FakeProductRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.docs[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	return nil
}

func (f *FakeProductRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.docs, id)
	for i, known := range f.ids {
		if known == id {
			f.ids = append(f.ids[:i], f.ids[i+1:]...)
			break
		}
	}
	return nil
}

// FakeSlideRepo is an in-memory SlideRepository.
type FakeSlideRepo struct {
	mu     sync.Mutex
	slides []*model.Slide
}

func NewFakeSlideRepo() *FakeSlideRepo {
	return &FakeSlideRepo{}
}

func (f *FakeSlideRepo) Create(_ context.Context, slide *model.Slide) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	slide.ID = primitive.NewObjectID()
	f.slides = append(f.slides, slide)
	return nil
}

func (f *FakeSlideRepo) List(_ context.Context) ([]*model.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*model.Slide, len(f.slides))
	copy(out, f.slides)
	return out, nil
}

func (f *FakeSlideRepo) GetByID(_ context.Context, id primitive.ObjectID) (*model.Slide, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slides {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *FakeSlideRepo) Update(_ context.Context, id primitive.ObjectID, fields bson.M) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.slides {
		if s.ID == id {
			if v, ok := fields["image"].(string); ok {
				s.Image = v
			}
			if v, ok := fields["title"].(string); ok {
				s.Title = v
			}
			if v, ok := fields["subtitle"].(string); ok {
				s.Subtitle = v
			}
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *FakeSlideRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, s := range f.slides {
		if s.ID == id {
			f.slides = append(f.slides[:i], f.slides[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// FakeTx runs the transactional function directly. OnRollback, when set, is
// invoked after fn fails so tests can undo fake writes the way an aborted
// transaction would.
type FakeTx struct {
	OnRollback func()
}

func (t *FakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		if t.OnRollback != nil {
			t.OnRollback()
		}
		return err
	}
	return nil
}

// FakeUploader returns a fixed URL or error.
type FakeUploader struct {
	URL string
	Err error
}

func (u *FakeUploader) Upload(_ context.Context, _ string) (string, error) {
	if u.Err != nil {
		return "", u.Err
	}
	return u.URL, nil
}
