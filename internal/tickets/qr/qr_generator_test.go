package qr

import (
	"bytes"
	"testing"
	"time"

	"ms-venue/internal/venue"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticket = venue.Ticket{
	ID:              "B7",
	SectorCode:      "B",
	Seat:            7,
	SeatDescription: "7 (Row 2, Position 2)",
	Price:           20,
	PurchasedAt:     time.Date(2025, 9, 11, 19, 30, 0, 0, time.UTC),
}

func TestSealOpen(t *testing.T) {
	g := NewQRGenerator("secret")
	p := NewPayload(1234567890, "AD001", ticket)

	token, err := g.Seal(p)
	require.NoError(t, err)

	got, err := g.Open(token)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestSealIsRandomized(t *testing.T) {
	g := NewQRGenerator("secret")
	p := NewPayload(1, "AD001", ticket)

	a, err := g.Seal(p)
	require.NoError(t, err)
	b, err := g.Seal(p)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestOpen_WrongSecret(t *testing.T) {
	token, err := NewQRGenerator("secret").Seal(NewPayload(1, "AD001", ticket))
	require.NoError(t, err)

	_, err = NewQRGenerator("other").Open(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewQRGenerator("secret").Open("not base64!")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewQRGenerator("secret").Open("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestGenerateEncryptedQR_PNG(t *testing.T) {
	png, err := NewQRGenerator("secret").GenerateEncryptedQR(NewPayload(1, "AD001", ticket))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
