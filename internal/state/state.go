package state

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"hash/crc32"
	"log"

	"github.com/denisbrodbeck/machineid"
	"github.com/quasilyte/gdata/v2"

	"github.com/vinser/gridwalker/internal/config"
	"github.com/vinser/gridwalker/internal/sound"
)

// AppName names the gdata storage and salts the machine key.
const AppName = "gridwalker"

// Storage location inside gdata
const (
	stateObject   = "state"
	stateProperty = "session"
)

// State holds the settings and counters that survive between sessions.
type State struct {
	Mode         string `json:"mode"`          // Search mode: uniform or best-first
	Generator    string `json:"generator"`     // Wall layout: blocks or maze
	Engine       string `json:"engine"`        // Engine kind: inprocess or external
	Trace        bool   `json:"trace"`         // Animate the exploration trace
	Theme        string `json:"theme"`         // auto, day or night
	Mute         bool   `json:"mute"`          // Mute all sounds
	Seed         int64  `json:"seed"`          // Seed of the last world, to reproduce it
	Searches     int    `json:"searches"`      // Searches run
	Found        int    `json:"found"`         // Searches that found a path
	Unreachable  int    `json:"unreachable"`   // Searches that found no path
	GoalsReached int    `json:"goals_reached"` // Goals reached by walking

	SoundManager *sound.Manager `json:"-"`
	store        *gdata.Manager
}

var ErrChecksum = errors.New("state checksum mismatch")

var encryptionKey = generateKey()

// generateKey creates a 32-byte AES key from system-specific data.
func generateKey() []byte {
	appID, err := machineid.ProtectedID(AppName)
	if err != nil {
		appID = "default-gridwalker-id" // Fallback if machine ID fails
	}
	sum := sha256.Sum256([]byte(appID))
	return sum[:]
}

// OpenStore opens the gdata storage. It returns nil when the platform
// storage is unavailable; state then lives in memory only.
func OpenStore() *gdata.Manager {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[State] Warning: storage unavailable: %v (settings will not persist)", err)
		return nil
	}
	return m
}

// New returns a fresh state seeded from the configuration.
func New(store *gdata.Manager, cfg *config.Config) *State {
	return &State{
		Mode:      cfg.Search.Mode,
		Generator: cfg.Grid.Generator,
		Engine:    cfg.Engine.Kind,
		Trace:     cfg.Search.Trace,
		Theme:     cfg.Theme,
		Seed:      cfg.Grid.Seed,
		store:     store,
	}
}

// Load reads the saved state. Missing, corrupt or foreign state is replaced
// by New.
func Load(store *gdata.Manager, cfg *config.Config) *State {
	if store == nil || !store.ObjectPropExists(stateObject, stateProperty) {
		return New(store, cfg)
	}
	data, err := store.LoadObjectProp(stateObject, stateProperty)
	if err != nil {
		log.Printf("[State] Warning: failed to load state: %v (using defaults)", err)
		return New(store, cfg)
	}
	s, err := decode(data)
	if err != nil {
		log.Printf("[State] Warning: discarding saved state: %v", err)
		return New(store, cfg)
	}
	s.store = store
	return s
}

// Save persists the state. Without storage it is a no-op.
func (s *State) Save() error {
	if s.store == nil {
		return nil
	}
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := s.store.SaveObjectProp(stateObject, stateProperty, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Reset replaces settings and counters with the configuration defaults.
// Storage and the sound manager are kept.
func (s *State) Reset(cfg *config.Config) {
	fresh := New(s.store, cfg)
	fresh.SoundManager = s.SoundManager
	*s = *fresh
	s.applyMute()
}

// AttachSound hands the sound manager to the state. A nil manager keeps the
// session silent without touching the saved preference.
func (s *State) AttachSound(mgr *sound.Manager) {
	s.SoundManager = mgr
	if mgr == nil {
		return
	}
	s.applyMute()
}

// SetMute toggles the mute state and applies it to the sound manager.
func (s *State) SetMute(mute bool) {
	s.Mute = mute
	s.applyMute()
}

func (s *State) applyMute() {
	if s.SoundManager == nil {
		return
	}
	if s.Mute {
		s.SoundManager.Mute()
	} else {
		s.SoundManager.Unmute()
	}
}

// Play plays a sound unless muted.
func (s *State) Play(name string) {
	if s.Mute {
		return
	}
	if err := s.SoundManager.Play(name); err != nil {
		log.Printf("sound %s: %v", name, err)
	}
}

// RecordSearch counts a finished search.
func (s *State) RecordSearch(found bool) {
	s.Searches++
	if found {
		s.Found++
	} else {
		s.Unreachable++
	}
}

// RecordGoal counts a goal reached by walking.
func (s *State) RecordGoal() {
	s.GoalsReached++
}

// encode serializes the state to JSON, prepends a CRC32 and encrypts it.
func encode(s *State) ([]byte, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	crc := crc32.ChecksumIEEE(raw)
	data := make([]byte, 4+len(raw))
	binary.LittleEndian.PutUint32(data[:4], crc)
	copy(data[4:], raw)
	return encrypt(data)
}

// decode reverses encode and verifies the checksum.
func decode(encrypted []byte) (*State, error) {
	decrypted, err := decrypt(encrypted)
	if err != nil {
		return nil, err
	}
	if len(decrypted) < 5 {
		return nil, errors.New("state too short")
	}
	crcStored := binary.LittleEndian.Uint32(decrypted[:4])
	payload := decrypted[4:]
	if crc32.ChecksumIEEE(payload) != crcStored {
		return nil, ErrChecksum
	}
	var s State
	if err := json.Unmarshal(payload, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ======================
// 🔐 AES Encryption
// ======================

func encrypt(plain []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plain, nil), nil
}

func decrypt(ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(encryptionKey)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}
	return gcm.Open(nil, ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():], nil)
}
