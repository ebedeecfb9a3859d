package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/showcase/showcase-client/store"
)

const fingerprintKey = "browser_fingerprint"

// FingerprintProvider derives a stable anonymous identifier for this
// device and persists it. The backend uses it to attribute reactions from
// visitors who never signed up.
type FingerprintProvider struct {
	st store.Store

	mu     sync.Mutex
	cached string
}

// NewFingerprintProvider wraps the given key-value store.
func NewFingerprintProvider(st store.Store) *FingerprintProvider {
	return &FingerprintProvider{st: st}
}

// Fingerprint returns the stored identifier, generating and persisting one
// on first use. There is no error path: if the store rejects the write the
// value is simply regenerated next call, and because generation is
// deterministic for a given machine the identifier stays stable anyway.
func (p *FingerprintProvider) Fingerprint() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cached != "" {
		return p.cached
	}
	if v, ok := p.st.Get(fingerprintKey); ok && v != "" {
		p.cached = v
		return v
	}
	fp := generateFingerprint()
	if err := p.st.Set(fingerprintKey, fp); err == nil {
		p.cached = fp
	}
	return fp
}

// generateFingerprint combines coarse device and locale signals, mirroring
// the canvas-plus-navigator scheme of the web client: a 32-char digest
// followed by 16 chars of encoded raw signals.
func generateFingerprint() string {
	host, _ := os.Hostname()
	_, tzOffset := time.Now().Zone()
	signals := strings.Join([]string{
		host,
		runtime.GOOS,
		runtime.GOARCH,
		os.Getenv("LANG"),
		strconv.Itoa(tzOffset / 60),
	}, "|")

	sum := sha256.Sum256([]byte(signals))
	hash := hex.EncodeToString(sum[:])[:32]
	enc := base64.RawStdEncoding.EncodeToString([]byte(signals))
	if len(enc) > 16 {
		enc = enc[:16]
	}
	return "fp_" + hash + "_" + enc
}
