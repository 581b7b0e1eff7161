// Package storage persists pickup jobs and scan history in SQLite. Customer
// contact fields are encrypted at rest with AES-GCM.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// PickupRecord is a persisted collection job. CustomerName and ContactPhone
// are stored encrypted.
type PickupRecord struct {
	ID               string
	Address          string
	CustomerName     string
	ContactPhone     string
	Items            string
	ScheduledTime    string
	EstimatedEarning float64
	Status           string
	CreatedAt        time.Time
}

// ScanRecord is one row of scan history.
type ScanRecord struct {
	ID         int64
	IsEwaste   bool
	Confidence float64
	DeviceType string
	Brand      string
	Condition  string
	CreatedAt  time.Time
}

// Store defines the persistence interface.
type Store interface {
	SavePickup(rec *PickupRecord) error
	GetPickup(id string) (*PickupRecord, error)
	ListPickupsByStatus(status string) ([]PickupRecord, error)
	UpdatePickupStatus(id, status string) error

	SaveScan(rec *ScanRecord) error
	RecentScans(limit int) ([]ScanRecord, error)

	Close() error
}

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db            *sql.DB
	encryptionKey []byte
	mu            sync.RWMutex
}

// NewSQLiteStore opens (or creates) the database at dbPath. The encryption
// key protects customer contact fields.
func NewSQLiteStore(dbPath string, encryptionKey []byte) (*SQLiteStore, error) {
	// WAL mode and a busy timeout for concurrent HTTP handlers
	dsn := fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Set file permissions (only works on creation)
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		// Ignore error if file doesn't exist yet
	}

	store := &SQLiteStore{
		db:            db,
		encryptionKey: encryptionKey,
	}

	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	pickupsQuery := `
	CREATE TABLE IF NOT EXISTS pickups (
		id TEXT PRIMARY KEY,
		address TEXT NOT NULL,
		customer_name_enc TEXT NOT NULL,
		contact_phone_enc TEXT NOT NULL,
		items TEXT NOT NULL,
		scheduled_time TEXT NOT NULL,
		estimated_earning REAL NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(pickupsQuery); err != nil {
		return fmt.Errorf("failed to create pickups table: %w", err)
	}

	scansQuery := `
	CREATE TABLE IF NOT EXISTS scans (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		is_ewaste INTEGER NOT NULL,
		confidence REAL NOT NULL,
		device_type TEXT NOT NULL,
		brand TEXT NOT NULL,
		condition TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);
	`
	if _, err := s.db.Exec(scansQuery); err != nil {
		return fmt.Errorf("failed to create scans table: %w", err)
	}

	return nil
}

func (s *SQLiteStore) SavePickup(rec *PickupRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	nameEnc, err := Encrypt([]byte(rec.CustomerName), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt customer name: %w", err)
	}
	phoneEnc, err := Encrypt([]byte(rec.ContactPhone), s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt contact phone: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO pickups
		(id, address, customer_name_enc, contact_phone_enc, items, scheduled_time, estimated_earning, status, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.Exec(query,
		rec.ID, rec.Address, nameEnc, phoneEnc, rec.Items,
		rec.ScheduledTime, rec.EstimatedEarning, rec.Status, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save pickup: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetPickup(id string) (*PickupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
	SELECT id, address, customer_name_enc, contact_phone_enc, items, scheduled_time, estimated_earning, status, created_at
	FROM pickups WHERE id = ?
	`
	return s.scanPickupRow(s.db.QueryRow(query, id))
}

func (s *SQLiteStore) ListPickupsByStatus(status string) ([]PickupRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
	SELECT id, address, customer_name_enc, contact_phone_enc, items, scheduled_time, estimated_earning, status, created_at
	FROM pickups WHERE status = ? ORDER BY created_at
	`
	rows, err := s.db.Query(query, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list pickups: %w", err)
	}
	defer rows.Close()

	var records []PickupRecord
	for rows.Next() {
		var rec PickupRecord
		var nameEnc, phoneEnc string
		if err := rows.Scan(&rec.ID, &rec.Address, &nameEnc, &phoneEnc, &rec.Items,
			&rec.ScheduledTime, &rec.EstimatedEarning, &rec.Status, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan pickup row: %w", err)
		}
		if err := s.decryptContact(&rec, nameEnc, phoneEnc); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) UpdatePickupStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE pickups SET status = ? WHERE id = ?", status, id)
	if err != nil {
		return fmt.Errorf("failed to update pickup status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *SQLiteStore) SaveScan(rec *ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
	INSERT INTO scans (is_ewaste, confidence, device_type, brand, condition, created_at)
	VALUES (?, ?, ?, ?, ?, ?)
	`
	res, err := s.db.Exec(query, rec.IsEwaste, rec.Confidence, rec.DeviceType, rec.Brand, rec.Condition, rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save scan: %w", err)
	}
	rec.ID, _ = res.LastInsertId()
	return nil
}

func (s *SQLiteStore) RecentScans(limit int) ([]ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
	SELECT id, is_ewaste, confidence, device_type, brand, condition, created_at
	FROM scans ORDER BY created_at DESC, id DESC LIMIT ?
	`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list scans: %w", err)
	}
	defer rows.Close()

	var records []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		if err := rows.Scan(&rec.ID, &rec.IsEwaste, &rec.Confidence, &rec.DeviceType,
			&rec.Brand, &rec.Condition, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) scanPickupRow(row *sql.Row) (*PickupRecord, error) {
	var rec PickupRecord
	var nameEnc, phoneEnc string
	err := row.Scan(&rec.ID, &rec.Address, &nameEnc, &phoneEnc, &rec.Items,
		&rec.ScheduledTime, &rec.EstimatedEarning, &rec.Status, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pickup: %w", err)
	}
	if err := s.decryptContact(&rec, nameEnc, phoneEnc); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *SQLiteStore) decryptContact(rec *PickupRecord, nameEnc, phoneEnc string) error {
	name, err := Decrypt(nameEnc, s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to decrypt customer name: %w", err)
	}
	phone, err := Decrypt(phoneEnc, s.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to decrypt contact phone: %w", err)
	}
	rec.CustomerName = string(name)
	rec.ContactPhone = string(phone)
	return nil
}
