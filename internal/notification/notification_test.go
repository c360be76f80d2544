package notification

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestDispatcher_RunsTasks(t *testing.T) {
	d := NewDispatcher(2, 16, time.Second, zap.NewNop())

	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		d.Submit("count", func(ctx context.Context) error {
			ran.Add(1)
			return nil
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, d.Close(ctx))
	assert.Equal(t, int32(10), ran.Load())
}

func TestDispatcher_SurvivesFailuresAndPanics(t *testing.T) {
	d := NewDispatcher(1, 8, time.Second, zap.NewNop())

	var ran atomic.Int32
	d.Submit("fails", func(ctx context.Context) error { return errors.New("smtp down") })
	d.Submit("panics", func(ctx context.Context) error { panic("boom") })
	d.Submit("ok", func(ctx context.Context) error {
		ran.Add(1)
		return nil
	})

	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(1), ran.Load())
}

func TestDispatcher_DropsWhenFull(t *testing.T) {
	d := NewDispatcher(1, 1, time.Second, zap.NewNop())

	release := make(chan struct{})
	started := make(chan struct{})
	d.Submit("blocker", func(ctx context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	var ran atomic.Int32
	inc := func(ctx context.Context) error {
		ran.Add(1)
		return nil
	}
	d.Submit("queued", inc)
	d.Submit("dropped", inc)

	close(release)
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, int32(1), ran.Load())
}

func TestDispatcher_TaskGetsDeadline(t *testing.T) {
	d := NewDispatcher(1, 1, 50*time.Millisecond, zap.NewNop())

	var hadDeadline atomic.Bool
	d.Submit("deadline", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hadDeadline.Store(ok)
		return nil
	})

	require.NoError(t, d.Close(context.Background()))
	assert.True(t, hadDeadline.Load())
}

func TestDispatcher_SubmitAfterClose(t *testing.T) {
	d := NewDispatcher(1, 1, time.Second, zap.NewNop())
	require.NoError(t, d.Close(context.Background()))

	assert.NotPanics(t, func() {
		d.Submit("late", func(ctx context.Context) error {
			t.Fatal("should not run")
			return nil
		})
	})
}

func TestInline_SwallowsErrors(t *testing.T) {
	called := false
	assert.NotPanics(t, func() {
		Inline{Log: zap.NewNop()}.Submit("x", func(ctx context.Context) error {
			called = true
			return errors.New("fail")
		})
	})
	assert.True(t, called)
}

func TestConsumer_Handle(t *testing.T) {
	sender := new(MockSender)
	c := NewConsumer(ConsumerConfig{}, sender, zap.NewNop())

	want := Message{To: "a@b.com", Subject: "Hi", Body: "hello"}
	sender.On("Send", mock.Anything, want).Return(nil).Once()

	err := c.handle(context.Background(), []byte(`{"to":"a@b.com","subject":"Hi","body":"hello"}`))
	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestConsumer_HandleBadPayload(t *testing.T) {
	sender := new(MockSender)
	c := NewConsumer(ConsumerConfig{}, sender, zap.NewNop())

	err := c.handle(context.Background(), []byte(`not-json`))
	assert.ErrorIs(t, err, errBadPayload)

	err = c.handle(context.Background(), []byte(`{"subject":"no recipient"}`))
	assert.ErrorIs(t, err, errBadPayload)

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestConsumer_HandleSendFailureIsRetryable(t *testing.T) {
	sender := new(MockSender)
	c := NewConsumer(ConsumerConfig{}, sender, zap.NewNop())
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

	err := c.handle(context.Background(), []byte(`{"to":"a@b.com","subject":"Hi"}`))
	require.Error(t, err)
	assert.False(t, errors.Is(err, errBadPayload))
}

func TestFileAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt_1.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.3"), 0o644))

	a, err := FileAttachment(path, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "receipt_1.pdf", a.Filename)
	assert.Equal(t, "application/pdf", a.ContentType)
	assert.Equal(t, []byte("%PDF-1.3"), a.Data)

	_, err = FileAttachment(filepath.Join(t.TempDir(), "missing.pdf"), "application/pdf")
	assert.Error(t, err)
}

func TestSMTPSender_BuildsAttachments(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "localhost", Port: 25, From: "noreply@sportshub.com"})

	m, err := s.build(Message{
		To:      "user@example.com",
		Subject: "Receipt",
		Body:    "Attached.",
		Attachments: []Attachment{
			{Filename: "receipt.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		},
	})
	require.NoError(t, err)
	assert.Len(t, m.GetAttachments(), 1)

	_, err = s.build(Message{To: "not an address", Subject: "x"})
	assert.Error(t, err)
}

func TestLogSender_RejectsInvalid(t *testing.T) {
	s := NewLogSender(zap.NewNop())
	assert.Error(t, s.Send(context.Background(), Message{Subject: "x"}))
	assert.NoError(t, s.Send(context.Background(), Message{To: "a@b.com", Subject: "x"}))
}
