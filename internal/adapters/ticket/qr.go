// Package ticket renders check-in passes for event registrations as QR
// codes. The payload is AES-encrypted so a scanned pass can only be read by
// a check-in tool that shares the secret.
package ticket

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"

	"github.com/skip2/go-qrcode"

	"campusevents/internal/domain"
)

// Pass is the payload encoded into a check-in QR code.
type Pass struct {
	EventSlug        string `json:"event_slug"`
	EventTitle       string `json:"event_title"`
	AttendeeName     string `json:"attendee_name"`
	AttendeeEmail    string `json:"attendee_email"`
	ConfirmationCode string `json:"confirmation_code"`
}

type Generator struct {
	secret []byte
}

func NewGenerator(secret string) *Generator {
	hashed := sha256.Sum256([]byte(secret)) // normalize to 32 bytes
	return &Generator{secret: hashed[:]}
}

// GeneratePass returns a 256x256 PNG QR code for the attendee's registration.
func (g *Generator) GeneratePass(event *domain.Event, attendee *domain.Attendee) ([]byte, error) {
	payload, err := json.Marshal(Pass{
		EventSlug:        event.Slug,
		EventTitle:       event.Title,
		AttendeeName:     attendee.Name,
		AttendeeEmail:    attendee.Email,
		ConfirmationCode: attendee.ConfirmationCode,
	})
	if err != nil {
		return nil, err
	}

	encrypted, err := encryptAES(payload, g.secret)
	if err != nil {
		return nil, err
	}

	return qrcode.Encode(encrypted, qrcode.Medium, 256)
}

func encryptAES(data []byte, key []byte) (string, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	ciphertext := make([]byte, aes.BlockSize+len(data))
	iv := ciphertext[:aes.BlockSize]

	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	stream := cipher.NewCFBEncrypter(block, iv)
	stream.XORKeyStream(ciphertext[aes.BlockSize:], data)

	return base64.URLEncoding.EncodeToString(ciphertext), nil
}
