package email

import (
	"testing"

	"campusevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Registration(t *testing.T) {
	renderer := NewTemplateRenderer()
	data := &domain.RegistrationEmailData{
		Name:             "Juan Pérez",
		Email:            "juan@example.com",
		EventTitle:       "Conferencia de juegos",
		EventDate:        "2031-09-15",
		EventTime:        "14:00",
		EventLocation:    "Auditorio Principal",
		ConfirmationCode: "code-123",
	}

	subject, htmlBody, textBody, err := renderer.Render("registration", data)
	require.NoError(t, err)
	assert.Equal(t, "Registro confirmado: Conferencia de juegos", subject)
	assert.Contains(t, htmlBody, "Conferencia de juegos")
	assert.Contains(t, htmlBody, "code-123")
	assert.Contains(t, textBody, "Juan Pérez")
	assert.Contains(t, textBody, "Auditorio Principal")
}

func TestRender_UnknownTemplate(t *testing.T) {
	renderer := NewTemplateRenderer()
	_, _, _, err := renderer.Render("nope", nil)
	require.Error(t, err)
}
