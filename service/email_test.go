package service

import (
	"bytes"
	"errors"
	"testing"

	"expo/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.messages = append(c.messages, m...)
	return c.err
}

func newTestEmailService(enabled bool, sender *captureSender) *EmailService {
	s := NewEmailService(&config.EmailConfig{
		Enabled:  enabled,
		Host:     "smtp.example.com",
		Port:     465,
		Username: "bills@example.com",
		From:     "EXPO",
	})
	s.dialer = func(*config.EmailConfig) mailSender { return sender }
	return s
}

func TestGenerateBillEmailBody(t *testing.T) {
	s := newTestEmailService(true, &captureSender{})
	body := s.generateBillEmailBody("alice<script>", "₹1,234.50")
	assert.Contains(t, body, "alice&lt;script&gt;")
	assert.Contains(t, body, "₹1,234.50")
	assert.Contains(t, body, "Thank you for using Expense Tracker")
}

func TestSendBill_Disabled(t *testing.T) {
	sender := &captureSender{}
	s := newTestEmailService(false, sender)

	err := s.SendBill("alice@example.com", "alice", "₹0.00", []byte("%PDF"))
	assert.ErrorIs(t, err, ErrEmailDisabled)
	assert.Empty(t, sender.messages)
}

func TestSendBill_NoRecipient(t *testing.T) {
	s := newTestEmailService(true, &captureSender{})
	assert.ErrorIs(t, s.SendBill("", "alice", "₹0.00", nil), ErrNoRecipient)
}

func TestSendBill_AttachesPDF(t *testing.T) {
	sender := &captureSender{}
	s := newTestEmailService(true, sender)

	require.NoError(t, s.SendBill("alice@example.com", "alice", "₹150.00", []byte("%PDF-1.3 fake")))
	require.Len(t, sender.messages, 1)

	var raw bytes.Buffer
	_, err := sender.messages[0].WriteTo(&raw)
	require.NoError(t, err)
	assert.Contains(t, raw.String(), "alice@example.com")
	assert.Contains(t, raw.String(), "expense_bill.pdf")
	assert.Contains(t, raw.String(), "application/pdf")
}

func TestSendBill_DialError(t *testing.T) {
	sender := &captureSender{err: errors.New("connection refused")}
	s := newTestEmailService(true, sender)

	err := s.SendBill("alice@example.com", "alice", "₹0.00", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
