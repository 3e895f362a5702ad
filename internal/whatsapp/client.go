package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"

	"github.com/wablast/wablast/internal/logging"
)

const webURL = "https://web.whatsapp.com"

// Selector for the chat list pane; only present once logged in.
const loggedInSelector = `//div[@id='side']`

// Candidate selectors for the message input box. WhatsApp Web changes its
// DOM between releases, so several are tried in order.
var inputSelectors = []string{
	`//div[@contenteditable='true'][@data-tab='10']`,
	`//div[@contenteditable='true'][@role='textbox']`,
	`//div[@contenteditable='true'][@data-lexical-editor='true']`,
}

// Candidate selectors for the sent-message checkmark.
var sentCheckSelectors = []string{
	`(//span[@data-icon='msg-check'])[last()]`,
	`(//span[@data-icon='msg-dblcheck'])[last()]`,
	`(//span[@data-icon='msg-dblcheck-ack'])[last()]`,
}

// Options configures the browser session.
type Options struct {
	// ChromePath overrides chromedp's Chrome auto-detection.
	ChromePath string

	// UserDataDir persists the WhatsApp Web session between runs, so the
	// QR code only needs scanning once.
	UserDataDir string

	// Headless runs Chrome without a visible window. Login via QR code
	// requires a visible window, so this is off by default.
	Headless bool

	// QRTimeout is how long to wait for the QR scan on first login.
	QRTimeout time.Duration

	// Timing is the wall-clock wait profile.
	Timing Timing

	// Retry is the per-message retry policy.
	Retry Retry

	// Pacer spaces out sends. Optional.
	Pacer *Pacer
}

// DefaultOptions returns the standard browser options.
func DefaultOptions() Options {
	return Options{
		QRTimeout: 2 * time.Minute,
		Timing:    DefaultTiming(),
		Retry:     DefaultRetry(),
	}
}

// Client drives WhatsApp Web through a Chrome instance.
type Client struct {
	opts        Options
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      zerolog.Logger
}

// NewClient creates a client. Initialize must be called before Send.
func NewClient(opts Options) *Client {
	if opts.Timing == (Timing{}) {
		opts.Timing = DefaultTiming()
	}
	if opts.Retry == (Retry{}) {
		opts.Retry = DefaultRetry()
	}
	return &Client{
		opts:   opts,
		logger: logging.Component("whatsapp"),
	}
}

// Initialize starts Chrome and navigates to WhatsApp Web.
func (c *Client) Initialize(ctx context.Context) error {
	if c.opts.UserDataDir != "" {
		if err := os.MkdirAll(c.opts.UserDataDir, 0o755); err != nil {
			return fmt.Errorf("failed to create user data directory: %w", err)
		}
	}
	if c.opts.ChromePath != "" {
		if _, err := os.Stat(c.opts.ChromePath); err != nil {
			return fmt.Errorf("chrome executable not found at %s: %w", c.opts.ChromePath, err)
		}
	}

	chromeOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", c.opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-infobars", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.WindowSize(1200, 800),
	)
	if c.opts.UserDataDir != "" {
		chromeOpts = append(chromeOpts, chromedp.UserDataDir(c.opts.UserDataDir))
	}
	if c.opts.ChromePath != "" {
		chromeOpts = append(chromeOpts, chromedp.ExecPath(c.opts.ChromePath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromeOpts...)
	c.allocCancel = allocCancel
	c.ctx, c.cancel = chromedp.NewContext(allocCtx)

	c.logger.Info().Msg("opening WhatsApp Web")
	if err := chromedp.Run(c.ctx, chromedp.Navigate(webURL)); err != nil {
		c.Close()
		return fmt.Errorf("failed to navigate to WhatsApp Web: %w", err)
	}
	return nil
}

// Close shuts down the browser session.
func (c *Client) Close() {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	if c.allocCancel != nil {
		c.allocCancel()
		c.allocCancel = nil
	}
}

// CheckLogin waits for the chat list pane to appear. When it does not show
// up within QRTimeout the session is not authenticated and ErrNotLoggedIn
// is returned.
func (c *Client) CheckLogin(ctx context.Context) error {
	if c.ctx == nil {
		return ErrBrowserNotStarted
	}

	c.logger.Info().Dur("timeout", c.opts.QRTimeout).Msg("checking WhatsApp Web login")

	waitCtx, cancel := context.WithTimeout(c.ctx, c.opts.QRTimeout)
	defer cancel()

	err := chromedp.Run(waitCtx, chromedp.WaitVisible(loggedInSelector, chromedp.BySearch))
	if err != nil {
		if waitCtx.Err() != nil || ctx.Err() != nil {
			c.logger.Warn().Msg("login pane never appeared, QR scan required")
			return ErrNotLoggedIn
		}
		return fmt.Errorf("failed to load WhatsApp Web: %w", err)
	}

	c.logger.Info().Msg("login successful")
	return nil
}

// Send dispatches a message to the given phone number, retrying with
// exponential backoff on failure.
func (c *Client) Send(ctx context.Context, phone, message string) error {
	if c.ctx == nil {
		return ErrBrowserNotStarted
	}

	if err := c.opts.Pacer.Wait(ctx); err != nil {
		return err
	}

	var lastErr error
	delay := c.opts.Retry.InitialDelay

	for attempt := 0; attempt <= c.opts.Retry.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Info().
				Int("attempt", attempt).
				Str("phone", phone).
				Dur("delay", delay).
				Msg("retrying send")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.opts.Retry.BackoffMultiplier)
			if delay > c.opts.Retry.MaxDelay {
				delay = c.opts.Retry.MaxDelay
			}
		}

		if err := c.sendAttempt(ctx, phone, message); err != nil {
			lastErr = err
			c.logger.Warn().Err(err).Str("phone", phone).Msg("send attempt failed")
			continue
		}
		return nil
	}

	return fmt.Errorf("failed after %d retries: %w", c.opts.Retry.MaxRetries, lastErr)
}

func (c *Client) sendAttempt(ctx context.Context, phone, message string) error {
	timing := c.opts.Timing
	cleanNumber := strings.NewReplacer("+", "", " ", "", "-", "").Replace(phone)
	chatURL := fmt.Sprintf("%s/send?phone=%s", webURL, cleanNumber)

	// Suppress the "Leave site?" dialog before navigating away.
	_ = chromedp.Run(c.ctx, chromedp.Evaluate(`window.onbeforeunload = null;`, nil))

	err := chromedp.Run(c.ctx,
		chromedp.Navigate(chatURL),
		chromedp.Sleep(timing.PageLoad),
	)
	if err != nil {
		return fmt.Errorf("failed to open chat: %w", err)
	}

	inputSelector, err := c.waitForInput()
	if err != nil {
		return err
	}

	err = chromedp.Run(c.ctx,
		chromedp.Click(inputSelector, chromedp.BySearch),
		chromedp.Sleep(timing.UISettle),
	)
	if err != nil {
		return fmt.Errorf("failed to focus message input: %w", err)
	}

	// Paste through the clipboard so multi-line messages keep their line
	// breaks instead of being sent line by line.
	normalized := strings.ReplaceAll(message, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	encoded, err := json.Marshal(normalized)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	err = chromedp.Run(c.ctx,
		chromedp.Evaluate(fmt.Sprintf(`navigator.clipboard.writeText(%s)`, encoded), nil),
		chromedp.Sleep(timing.PasteDelay),
		chromedp.KeyEvent("v", chromedp.KeyModifiers(2)), // ctrl/cmd+v
		chromedp.Sleep(timing.PasteDelay),
		chromedp.KeyEvent("\r"),
	)
	if err != nil {
		return fmt.Errorf("failed to paste and send message: %w", err)
	}

	if !c.confirmSent() {
		c.logger.Warn().Str("phone", phone).Msg("no sent checkmark found, assuming delivery")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(timing.UISettle):
	}
	return nil
}

// waitForInput tries the known input box selectors and returns the first
// one that becomes visible.
func (c *Client) waitForInput() (string, error) {
	for _, selector := range inputSelectors {
		waitCtx, cancel := context.WithTimeout(c.ctx, c.opts.Timing.ConfirmTimeout)
		err := chromedp.Run(waitCtx, chromedp.WaitVisible(selector, chromedp.BySearch))
		cancel()
		if err == nil {
			return selector, nil
		}
	}

	// An error banner instead of the input box usually means a bad number.
	var banner string
	_ = chromedp.Run(c.ctx,
		chromedp.Text(`//div[contains(text(), 'Phone number')]`, &banner, chromedp.BySearch),
	)
	if banner != "" {
		return "", fmt.Errorf("invalid phone number: %s", banner)
	}
	return "", fmt.Errorf("message input box not found")
}

// confirmSent polls for the sent checkmark until ConfirmTimeout elapses.
func (c *Client) confirmSent() bool {
	deadline := time.Now().Add(c.opts.Timing.ConfirmTimeout)
	for time.Now().Before(deadline) {
		for _, selector := range sentCheckSelectors {
			checkCtx, cancel := context.WithTimeout(c.ctx, 200*time.Millisecond)
			err := chromedp.Run(checkCtx, chromedp.WaitVisible(selector, chromedp.BySearch))
			cancel()
			if err == nil {
				return true
			}
		}
		time.Sleep(c.opts.Timing.ConfirmPoll)
	}
	return false
}
