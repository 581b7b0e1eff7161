package storage

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := NewSQLiteStore(dbPath, DeriveKey("test key"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPickupRoundTrip(t *testing.T) {
	store := newTestStore(t)

	rec := &PickupRecord{
		ID:               "p-1",
		Address:          "12 Park Street, New Delhi",
		CustomerName:     "Priya Sharma",
		ContactPhone:     "+91 98100 00000",
		Items:            "2 laptops, 1 monitor",
		ScheduledTime:    "2026-09-02T10:00:00Z",
		EstimatedEarning: 450,
		Status:           "pending",
		CreatedAt:        time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, store.SavePickup(rec))

	got, err := store.GetPickup("p-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, rec.Address, got.Address)
	assert.Equal(t, "Priya Sharma", got.CustomerName)
	assert.Equal(t, "+91 98100 00000", got.ContactPhone)
	assert.Equal(t, 450.0, got.EstimatedEarning)
}

func TestGetPickup_MissingReturnsNil(t *testing.T) {
	store := newTestStore(t)

	got, err := store.GetPickup("nope")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestContactFieldsAreEncryptedAtRest(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SavePickup(&PickupRecord{
		ID:           "p-1",
		Address:      "12 Park Street",
		CustomerName: "Priya Sharma",
		ContactPhone: "+91 98100 00000",
		Status:       "pending",
		CreatedAt:    time.Now(),
	}))

	var nameEnc, phoneEnc string
	err := store.db.QueryRow("SELECT customer_name_enc, contact_phone_enc FROM pickups WHERE id = ?", "p-1").
		Scan(&nameEnc, &phoneEnc)
	require.NoError(t, err)
	assert.NotContains(t, nameEnc, "Priya")
	assert.NotContains(t, phoneEnc, "98100")
}

func TestListPickupsByStatus(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UTC()
	for i, status := range []string{"pending", "accepted", "pending"} {
		require.NoError(t, store.SavePickup(&PickupRecord{
			ID:        []string{"a", "b", "c"}[i],
			Address:   "somewhere",
			Status:    status,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	pending, err := store.ListPickupsByStatus("pending")
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "a", pending[0].ID)
	assert.Equal(t, "c", pending[1].ID)
}

func TestUpdatePickupStatus(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SavePickup(&PickupRecord{
		ID: "p-1", Address: "somewhere", Status: "pending", CreatedAt: time.Now(),
	}))

	require.NoError(t, store.UpdatePickupStatus("p-1", "accepted"))

	got, err := store.GetPickup("p-1")
	require.NoError(t, err)
	assert.Equal(t, "accepted", got.Status)

	err = store.UpdatePickupStatus("missing", "accepted")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestScanHistory(t *testing.T) {
	store := newTestStore(t)

	base := time.Now().UTC()
	for i, deviceType := range []string{"Laptop", "Smartphone", "Monitor"} {
		require.NoError(t, store.SaveScan(&ScanRecord{
			IsEwaste:   true,
			Confidence: 87.3,
			DeviceType: deviceType,
			Brand:      "Dell",
			Condition:  "Fair",
			CreatedAt:  base.Add(time.Duration(i) * time.Second),
		}))
	}

	records, err := store.RecentScans(2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Newest first
	assert.Equal(t, "Monitor", records[0].DeviceType)
	assert.Equal(t, "Smartphone", records[1].DeviceType)
}
