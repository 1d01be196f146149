package chat

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"bistrot-counter/internal/config"
	"bistrot-counter/internal/menu"
	"bistrot-counter/internal/model"
	"bistrot-counter/internal/order"
	"bistrot-counter/internal/pickup"
	"bistrot-counter/internal/store"

	"github.com/rs/zerolog"
)

// Loop drives one interactive order-taking session: prompts, menu lookups,
// pickup time validation, order persistence and the repeat question. One
// loop serves one user at a time; there is no concurrent conversation.
type Loop struct {
	in        *bufio.Scanner
	out       io.Writer
	catalog   *menu.Catalog
	validator *pickup.Validator
	store     store.Store
	counter   config.CounterConfig
	now       func() time.Time
	logger    zerolog.Logger
}

// NewLoop creates a conversation loop reading from in and writing to out.
func NewLoop(
	in io.Reader,
	out io.Writer,
	catalog *menu.Catalog,
	validator *pickup.Validator,
	st store.Store,
	counter config.CounterConfig,
	logger zerolog.Logger,
) *Loop {
	return newLoop(in, out, catalog, validator, st, counter, time.Now, logger)
}

func newLoop(
	in io.Reader,
	out io.Writer,
	catalog *menu.Catalog,
	validator *pickup.Validator,
	st store.Store,
	counter config.CounterConfig,
	now func() time.Time,
	logger zerolog.Logger,
) *Loop {
	return &Loop{
		in:        bufio.NewScanner(in),
		out:       out,
		catalog:   catalog,
		validator: validator,
		store:     st,
		counter:   counter,
		now:       now,
		logger:    logger.With().Str("component", "conversation").Logger(),
	}
}

// Run executes conversations until the user declines another order, input
// is exhausted, or the context is cancelled. End-of-input is not an error:
// the user is sent off with a farewell.
func (l *Loop) Run(ctx context.Context) error {
	l.say("")
	l.say("👋 Welcome to %s!", l.counter.Name)
	l.say("I'll help you order your takeaway meal.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := l.takeOrder(ctx)
		if errors.Is(err, io.EOF) {
			l.farewell()
			return nil
		}
		if err != nil {
			// Unexpected failure in a conversation turn: log the detail,
			// tell the user something generic, and let the repeat question
			// decide whether to continue.
			l.logger.Error().
				Err(err).
				Str("error_code", model.ErrCodeInternalError).
				Msg("conversation turn failed")
			l.say("")
			l.say("❌ Sorry, something went wrong with that order.")
		}

		again, err := l.askYesNo("\n🔄 Would you like to place another order? (yes/no)")
		if err != nil || !again {
			l.farewell()
			return nil
		}
	}
}

// takeOrder runs one full order flow: menu, item selection, rental add-on,
// pickup time, customer details, persistence. With no items selected the
// flow ends without finalizing anything.
func (l *Loop) takeOrder(ctx context.Context) error {
	l.showMenu()

	builder := order.NewBuilderWithClock(l.counter.OrderTag, l.now)

	if err := l.collectItems(builder); err != nil {
		return err
	}

	if builder.Empty() {
		return nil
	}

	if err := l.offerRentals(builder); err != nil {
		return err
	}

	pickupTime, err := l.askPickupTime()
	if err != nil {
		return err
	}

	l.say("")
	l.say("🙋 Your name (press Enter to skip):")
	name, err := l.read()
	if err != nil {
		return err
	}

	l.say("📞 Your phone number (press Enter to skip):")
	phone, err := l.read()
	if err != nil {
		return err
	}

	l.printSummary(builder)

	ord, err := builder.Build(pickupTime, name, phone)
	if err != nil {
		return err
	}

	return l.persistWithRetry(ctx, ord)
}

// showMenu prints the catalogue grouped by category.
func (l *Loop) showMenu() {
	l.say("")
	l.say("=== 🥪 Menu %s 🎒 ===", l.counter.Name)

	l.say("")
	l.say("📌 OUR SANDWICHES AND WRAPS:")
	for _, item := range l.catalog.ListByCategory(model.CategorySandwich) {
		l.sayItem(item)
	}
	for _, item := range l.catalog.ListByCategory(model.CategoryWrap) {
		l.sayItem(item)
	}

	rentals := l.catalog.ListByCategory(model.CategoryRental)
	if len(rentals) > 0 {
		l.say("")
		l.say("📌 DAY PACK RENTAL:")
		for _, item := range rentals {
			l.sayItem(item)
		}
	}
}

func (l *Loop) sayItem(item model.MenuItem) {
	l.say("")
	l.say("%s - %sCHF", item.DisplayName, item.Price.StringFixed(2))
	l.say("  %s", item.Description)
}

// collectItems prompts for menu selections until the user types the
// 'fin'/'done' sentinel. Unknown queries are reported and reprompted, never
// fatal.
func (l *Loop) collectItems(builder *order.Builder) error {
	l.say("")
	l.say("🥪 Which sandwiches or wraps would you like? (type 'fin' or 'done' to finish)")

	for {
		choice, err := l.askNormalized("\nYour choice (or 'done'): ")
		if err != nil {
			return err
		}

		if choice == "fin" || choice == "done" {
			return nil
		}

		if choice == "" {
			continue
		}

		item := l.catalog.Lookup(choice)
		if item == nil {
			l.say("❌ %s", model.ErrItemNotFound.Message)
			continue
		}

		builder.AddItem(*item)
		l.say("✅ %s added to your order", item.DisplayName)
	}
}

// offerRentals proposes each rental item as a yes/no add-on.
func (l *Loop) offerRentals(builder *order.Builder) error {
	for _, item := range l.catalog.ListByCategory(model.CategoryRental) {
		yes, err := l.askYesNo(fmt.Sprintf("\n🎒 Would you like the %s for %sCHF? (yes/no)",
			item.DisplayName, item.Price.StringFixed(2)))
		if err != nil {
			return err
		}
		if yes {
			builder.AddItem(item)
			l.say("✅ %s added to your order", item.DisplayName)
		}
	}
	return nil
}

// askPickupTime prompts until the validator accepts a time, echoing the
// specific rejection reason on each failed attempt.
func (l *Loop) askPickupTime() (string, error) {
	for {
		l.say("")
		l.say("⏰ What time would you like to pick up your order? (format HH:MM)")
		requested, err := l.askNormalized("Pickup time: ")
		if err != nil {
			return "", err
		}

		accepted, err := l.validator.Validate(requested, l.now())
		if err != nil {
			l.say("❌ %s", err.Error())
			continue
		}

		return accepted, nil
	}
}

func (l *Loop) printSummary(builder *order.Builder) {
	l.say("")
	l.say("📋 Your order summary:")
	for _, line := range builder.Lines() {
		l.say("  • %s - %sCHF", line.Name, line.Price.StringFixed(2))
	}
	l.say("")
	l.say("💶 Total to pay: %sCHF", builder.Total().StringFixed(2))
}

// persistWithRetry saves the order, offering a retry when the store fails.
// The failure detail goes to the log; the user sees a generic notice.
func (l *Loop) persistWithRetry(ctx context.Context, ord *model.Order) error {
	for {
		handle, err := l.store.Persist(ctx, ord)
		if err == nil {
			l.logger.Info().
				Str("order_id", ord.ID).
				Str("record", handle).
				Str("total", ord.Total.StringFixed(2)).
				Msg("order persisted")
			l.printReceipt(ord)
			return nil
		}

		l.logger.Error().
			Err(err).
			Str("order_id", ord.ID).
			Str("error_code", model.ErrCodePersistence).
			Msg("failed to persist order")
		l.say("")
		l.say("❌ Sorry, we could not save your order.")

		retry, askErr := l.askYesNo("Try again? (yes/no)")
		if askErr != nil {
			return askErr
		}
		if !retry {
			return nil
		}
	}
}

func (l *Loop) printReceipt(ord *model.Order) {
	l.say("")
	l.say("📋 PREPARATION TICKET - %s", l.counter.Name)
	l.say("Number: #%s", ord.ID)
	l.say("To prepare for: %s", ord.PickupTime)
	l.say("")
	l.say("Items:")
	for _, line := range ord.Lines {
		l.say("  • %s", line.Name)
	}
	l.say("")
	l.say("📝 Your order #%s is registered", ord.ID)
	l.say("🕒 Pickup at %s at %s", ord.PickupTime, l.counter.Name)
	l.say("📍 %s", l.counter.Address)
	l.say("")
	l.say("💳 Payment is taken on site at pickup")
	l.say("📞 For any question: %s", l.counter.Phone)
}

func (l *Loop) farewell() {
	l.say("")
	l.say("👋 Thank you for choosing %s. See you soon!", l.counter.Name)
}

// say writes one line of conversation output.
func (l *Loop) say(format string, args ...any) {
	fmt.Fprintf(l.out, format+"\n", args...)
}

// read returns the next input line, trimmed but otherwise untouched. It
// reports io.EOF when input is exhausted.
func (l *Loop) read() (string, error) {
	if !l.in.Scan() {
		if err := l.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(l.in.Text()), nil
}

// askNormalized prompts and returns the lowercased, trimmed response. Used
// for every answer that drives a control decision.
func (l *Loop) askNormalized(prompt string) (string, error) {
	fmt.Fprint(l.out, prompt)
	line, err := l.read()
	if err != nil {
		return "", err
	}
	return strings.ToLower(line), nil
}

// askYesNo prompts for a yes/no answer. Anything other than an affirmative
// counts as no, as the original counter staff would read it.
func (l *Loop) askYesNo(prompt string) (bool, error) {
	l.say("%s", prompt)
	answer, err := l.askNormalized("\nYour choice: ")
	if err != nil {
		return false, err
	}

	switch answer {
	case "yes", "y", "oui":
		return true, nil
	default:
		return false, nil
	}
}
