package email

import (
	"context"
	"errors"
	"testing"

	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*resend.SendEmailRequest
	err  error
}

func (f *fakeSender) SendWithContext(_ context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &resend.SendEmailResponse{Id: "email-1"}, nil
}

func newTestClient(s sender) *Client {
	logger := zerolog.Nop()
	return &Client{emails: s, from: "Salon <alerts@example.com>", logger: &logger}
}

func TestRender_PreviewData(t *testing.T) {
	for name, data := range PreviewData {
		html, err := Render(name, data)
		require.NoError(t, err, name)
		assert.NotEmpty(t, html)
	}
}

func TestSendLowStockEmail(t *testing.T) {
	fake := &fakeSender{}
	client := newTestClient(fake)

	err := client.SendLowStockEmail(context.Background(), "owner@example.com", LowStockData{
		ProductID:    3,
		ProductName:  "Shampoo <pro>",
		CurrentStock: "1.5",
		MinStock:     2,
	})
	require.NoError(t, err)
	require.Len(t, fake.sent, 1)

	sent := fake.sent[0]
	assert.Equal(t, []string{"owner@example.com"}, sent.To)
	assert.Equal(t, "Salon <alerts@example.com>", sent.From)
	assert.Equal(t, "Low stock: Shampoo <pro>", sent.Subject)
	assert.Contains(t, sent.Html, "Shampoo &lt;pro&gt;")
	assert.Contains(t, sent.Html, "<strong>1.5</strong>")
}

func TestSendEmail_ProviderError(t *testing.T) {
	client := newTestClient(&fakeSender{err: errors.New("rate limited")})

	err := client.SendLowStockEmail(context.Background(), "owner@example.com", LowStockData{ProductName: "Gel"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestRender_UnknownTemplate(t *testing.T) {
	_, err := Render(Template("missing"), nil)
	assert.Error(t, err)
}
