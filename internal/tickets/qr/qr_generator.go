package qr

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"ms-venue/internal/venue"

	"github.com/skip2/go-qrcode"
)

var ErrInvalidToken = errors.New("invalid ticket token")

// Payload is what a gate scanner recovers from a ticket's QR code.
type Payload struct {
	VenueID   int64     `json:"venue_id"`
	AccountID string    `json:"account_id"`
	TicketID  string    `json:"ticket_id"`
	Sector    string    `json:"sector"`
	Seat      int       `json:"seat"`
	Price     float64   `json:"price"`
	IssuedAt  time.Time `json:"issued_at"`
}

func NewPayload(venueID int64, accountID string, t venue.Ticket) Payload {
	return Payload{
		VenueID:   venueID,
		AccountID: accountID,
		TicketID:  t.ID,
		Sector:    t.SectorCode,
		Seat:      t.Seat,
		Price:     t.Price,
		IssuedAt:  t.PurchasedAt,
	}
}

type QRGenerator struct {
	secret []byte
	size   int
}

func NewQRGenerator(secret string) *QRGenerator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &QRGenerator{secret: hashed[:], size: 256}
}

// GenerateEncryptedQR returns a PNG whose content is the sealed payload token.
func (q *QRGenerator) GenerateEncryptedQR(p Payload) ([]byte, error) {
	token, err := q.Seal(p)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(token, qrcode.Medium, q.size)
	if err != nil {
		return nil, fmt.Errorf("encode qr for ticket %s: %w", p.TicketID, err)
	}
	return png, nil
}

// Seal encrypts the payload with AES-GCM and returns it URL-safe base64 encoded.
func (q *QRGenerator) Seal(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	gcm, err := q.aead()
	if err != nil {
		return "", err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(gcm.Seal(nonce, nonce, data, nil)), nil
}

// Open reverses Seal. Tokens sealed under another secret fail with ErrInvalidToken.
func (q *QRGenerator) Open(token string) (Payload, error) {
	raw, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	gcm, err := q.aead()
	if err != nil {
		return Payload{}, err
	}
	if len(raw) < gcm.NonceSize() {
		return Payload{}, fmt.Errorf("%w: too short", ErrInvalidToken)
	}
	nonce, sealed := raw[:gcm.NonceSize()], raw[gcm.NonceSize():]
	data, err := gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return Payload{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return p, nil
}

func (q *QRGenerator) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(q.secret)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
