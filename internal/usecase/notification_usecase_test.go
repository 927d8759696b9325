package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"griyapasar/internal/domain/entity"
	"griyapasar/internal/livequery"
	"griyapasar/pkg/errors"
)

type fakePusher struct {
	mu     sync.Mutex
	events []feedEvent
}

func (f *fakePusher) SendToUser(userID string, payload []byte) {
	var event feedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		panic(err)
	}
	f.mu.Lock()
	f.events = append(f.events, event)
	f.mu.Unlock()
}

func (f *fakePusher) alertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, e := range f.events {
		if e.Event == "alert" {
			n++
		}
	}
	return n
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *entity.User) error { return nil }

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return nil, errors.NotFound("User", nil)
}

func (f *fakeUserRepo) Update(ctx context.Context, u *entity.User) error        { return nil }
func (f *fakeUserRepo) SetRole(ctx context.Context, id, role string) error      { return nil }
func (f *fakeUserRepo) AddFavorite(ctx context.Context, uid, pid string) error  { return nil }
func (f *fakeUserRepo) RemoveFavorite(ctx context.Context, uid, pid string) error {
	return nil
}

func (f *fakeUserRepo) List(ctx context.Context, filter map[string]interface{}, limit, offset int) ([]*entity.User, int64, error) {
	return nil, 0, nil
}

func newFeedUseCaseForTest(push bool) (*NotificationUseCase, *fakePusher) {
	pusher := &fakePusher{}
	users := &fakeUserRepo{users: map[string]*entity.User{
		"budi": {ID: "budi", NotifyPrefs: entity.NotifyPrefs{Push: push}},
	}}
	uc := NewNotificationUseCase(&fakeNotificationRepo{}, users, nil, pusher)
	return uc, pusher
}

func unreadDoc(id string) livequery.Document {
	return livequery.Document{ID: id, Data: map[string]interface{}{
		"userId": "budi",
		"title":  "Penawaran baru",
		"read":   false,
	}}
}

// Each connection owns its alert memory: a stale connection tearing down
// must not make the surviving connection re-alert the same notification on
// the next full-set replay.
func TestFeedAlertMemorySurvivesStaleConnectionTeardown(t *testing.T) {
	uc, pusher := newFeedUseCaseForTest(true)
	snapshot := livequery.Result{Docs: []livequery.Document{unreadDoc("n1")}}

	oldConn := livequery.NewDiffer()
	uc.deliver(oldConn, "budi", "notifications:budi", snapshot)
	require.Equal(t, 1, pusher.alertCount())

	// Reconnect: the replacement connection catches up and alerts once.
	newConn := livequery.NewDiffer()
	uc.deliver(newConn, "budi", "notifications:budi", snapshot)
	require.Equal(t, 2, pusher.alertCount())

	// The old connection going away leaves nothing shared to wipe; a replay
	// on the surviving connection stays silent.
	uc.deliver(newConn, "budi", "notifications:budi", snapshot)
	assert.Equal(t, 2, pusher.alertCount(), "same newest unread id must not alert twice on one connection")
}

func TestFeedAlertsNewArrivalOncePerConnection(t *testing.T) {
	uc, pusher := newFeedUseCaseForTest(true)
	conn := livequery.NewDiffer()

	first := livequery.Result{Docs: []livequery.Document{unreadDoc("n1")}}
	uc.deliver(conn, "budi", "notifications:budi", first)

	second := livequery.Result{Docs: []livequery.Document{unreadDoc("n2"), unreadDoc("n1")}}
	uc.deliver(conn, "budi", "notifications:budi", second)
	uc.deliver(conn, "budi", "notifications:budi", second)

	assert.Equal(t, 2, pusher.alertCount())
}

// Push preference gates only the transient alert; snapshots still flow.
func TestFeedPushPreferenceSuppressesAlert(t *testing.T) {
	uc, pusher := newFeedUseCaseForTest(false)
	conn := livequery.NewDiffer()

	uc.deliver(conn, "budi", "notifications:budi", livequery.Result{Docs: []livequery.Document{unreadDoc("n1")}})

	assert.Equal(t, 0, pusher.alertCount())
	require.Len(t, pusher.events, 1)
	assert.Equal(t, "snapshot", pusher.events[0].Event)
}
