package telegram

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"maqsad/pkg/db"
	"maqsad/pkg/extract"
	"maqsad/pkg/maqsad"
	"maqsad/pkg/normalize"
)

// kindLabel returns the user-facing label for a draft kind.
func kindLabel(k extract.Kind) string {
	switch k {
	case extract.KindIncome:
		return "💵 Kirim"
	case extract.KindExpense:
		return "💸 Chiqim"
	case extract.KindDebtLent:
		return "🤝 Qarz berildi"
	case extract.KindDebtBorrowed:
		return "📥 Qarz olindi"
	default:
		return string(k)
	}
}

// formatMoney renders an amount with space-grouped thousands: 1 250 000 UZS.
func formatMoney(amount decimal.Decimal, currency string) string {
	s := amount.String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := b.String()
	if frac != "" {
		out += "." + frac
	}
	if neg {
		out = "-" + out
	}
	return out + " " + strings.ToUpper(currency)
}

// draftLine renders one draft as a card line with its confidence and
// missing-field markers.
func draftLine(i int, d normalize.Draft, bucket normalize.Bucket) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%d. %s: <b>%s</b> (%s)", i+1, kindLabel(d.Kind), formatMoney(d.Amount, d.Currency), d.Category)

	if d.Counterparty != "" {
		fmt.Fprintf(&b, " — %s", d.Counterparty)
	}
	if d.DueDate != nil {
		fmt.Fprintf(&b, ", muddat: %s", d.DueDate.Format("02.01.2006"))
	}

	switch bucket {
	case normalize.BucketMedium:
		b.WriteString(" ⚠️")
	case normalize.BucketLow:
		b.WriteString(" ❓")
	}

	for _, f := range d.MissingFields {
		switch f {
		case "counterparty":
			b.WriteString("\n   ⚠️ kim bilan — aniqlanmadi")
		case "due_date":
			b.WriteString("\n   ⚠️ qaytarish muddati — aniqlanmadi")
		}
	}

	if d.Placeholder {
		b.WriteString("\n   ❓ summa aniqlanmadi, tahrirlang yoki o'chiring")
	}

	return b.String()
}

// confirmationCard renders the all-high multi-draft card.
func confirmationCard(drafts []normalize.Draft, buckets []normalize.Bucket, transcript string) string {
	var b strings.Builder
	b.WriteString("✅ <b>Tranzaksiyalarni tasdiqlang:</b>\n\n")
	writeDraftLines(&b, drafts, buckets)
	writeTranscript(&b, transcript)
	return b.String()
}

// previewCard renders the mixed-confidence card with per-draft controls.
func previewCard(drafts []normalize.Draft, buckets []normalize.Bucket, transcript string) string {
	var b strings.Builder
	b.WriteString("📝 <b>Topilgan tranzaksiyalar:</b>\n\n")
	writeDraftLines(&b, drafts, buckets)
	b.WriteString("\nHar birini alohida saqlang, tahrirlang yoki o'chiring.")
	writeTranscript(&b, transcript)
	return b.String()
}

// savedCard renders the auto-commit acknowledgement.
func savedCard(drafts []normalize.Draft, transcript string) string {
	var b strings.Builder
	b.WriteString("✅ <b>Saqlandi:</b>\n\n")
	for i, d := range drafts {
		b.WriteString(draftLine(i, d, normalize.BucketHigh))
		b.WriteString("\n")
	}
	writeTranscript(&b, transcript)
	return b.String()
}

// commitSummary renders the save acknowledgement. Saqlanmadi lists the
// 1-based numbers of drafts that could not be persisted.
func commitSummary(saved int, failed []int) string {
	return fmt.Sprintf("✅ %d ta tranzaksiya saqlandi.", saved) + failedLine(failed)
}

func failedLine(failed []int) string {
	if len(failed) == 0 {
		return ""
	}
	nums := make([]string, len(failed))
	for i, idx := range failed {
		nums[i] = strconv.Itoa(idx + 1)
	}
	return "\n⚠️ Saqlanmadi: " + strings.Join(nums, ", ")
}

func writeDraftLines(b *strings.Builder, drafts []normalize.Draft, buckets []normalize.Bucket) {
	for i, d := range drafts {
		bucket := normalize.BucketHigh
		if i < len(buckets) {
			bucket = buckets[i]
		}
		b.WriteString(draftLine(i, d, bucket))
		b.WriteString("\n")
	}
}

func writeTranscript(b *strings.Builder, transcript string) {
	if transcript != "" {
		fmt.Fprintf(b, "\n🎤 <i>Eshitildi: %s</i>", transcript)
	}
}

// rejectCard renders the did-not-understand message with usage examples.
func rejectCard(transcript string) string {
	var b strings.Builder
	if transcript != "" {
		fmt.Fprintf(&b, "🎤 Eshitildi: <i>%s</i>\n\n", transcript)
	}
	b.WriteString("Moliyaviy ma'lumot topa olmadim.\n\n")
	b.WriteString("Masalan:\n")
	b.WriteString("• <code>50 ming somsa oldim</code>\n")
	b.WriteString("• <code>oylik keldi 5 mln</code>\n")
	b.WriteString("• <code>Alisherga 200 ming qarz berdim, keyingi oy qaytaradi</code>")
	return b.String()
}

// balanceCard renders the per-currency balance report plus base totals.
func balanceCard(bal *maqsad.Balance) string {
	var b strings.Builder
	b.WriteString("💰 <b>Balans</b>\n")

	for currency, cb := range bal.PerCurrency {
		fmt.Fprintf(&b, "\n<b>%s</b>\n", strings.ToUpper(currency))
		fmt.Fprintf(&b, "  Kirim: %s\n", formatMoney(cb.Income, currency))
		fmt.Fprintf(&b, "  Chiqim: %s\n", formatMoney(cb.Expense, currency))
		if !cb.Borrowed.IsZero() {
			fmt.Fprintf(&b, "  Qarz olindi: %s\n", formatMoney(cb.Borrowed, currency))
		}
		if !cb.Lent.IsZero() {
			fmt.Fprintf(&b, "  Qarz berildi: %s\n", formatMoney(cb.Lent, currency))
		}
		fmt.Fprintf(&b, "  Naqd: %s\n", formatMoney(cb.Cash, currency))
	}

	if len(bal.PerCurrency) == 0 {
		b.WriteString("\n<i>Hozircha tranzaksiyalar yo'q.</i>")
		return b.String()
	}

	fmt.Fprintf(&b, "\n<b>Jami (%s)</b>\n", strings.ToUpper(bal.Base))
	fmt.Fprintf(&b, "  Naqd: %s\n", formatMoney(bal.TotalInBase.Cash, bal.Base))
	fmt.Fprintf(&b, "  Sof: %s", formatMoney(bal.TotalInBase.Net, bal.Base))

	return b.String()
}

// debtsCard renders the open debts list.
func debtsCard(debts []maqsad.Transaction) string {
	if len(debts) == 0 {
		return "📒 <b>Qarzlar</b>\n\n<i>Ochiq qarzlar yo'q.</i>"
	}

	var b strings.Builder
	b.WriteString("📒 <b>Ochiq qarzlar:</b>\n\n")
	for i, d := range debts {
		direction := "🤝 berilgan"
		if d.DebtDirection != nil && *d.DebtDirection == db.DebtDirectionBorrowed {
			direction = "📥 olingan"
		}

		counterparty := "noma'lum"
		if d.Counterparty != nil && *d.Counterparty != "" {
			counterparty = *d.Counterparty
		}

		remaining := d.Amount.Sub(d.PaidAmount)
		fmt.Fprintf(&b, "%d. %s — %s, qoldiq %s", i+1, direction, counterparty, formatMoney(remaining, d.Currency))
		if d.DueDate != nil {
			fmt.Fprintf(&b, ", muddat %s", d.DueDate.Format("02.01.2006"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// debtReminderText renders the scheduled debt notification. final selects the
// due-now wording over the 30-minute warning.
func debtReminderText(r db.DebtReminder, final bool) string {
	counterparty := "noma'lum"
	amount := ""
	if tx := r.Transaction; tx != nil {
		if tx.Counterparty != nil && *tx.Counterparty != "" {
			counterparty = *tx.Counterparty
		}
		amount = formatMoney(tx.Amount.Sub(tx.PaidAmount), tx.Currency)
	}

	if final {
		return fmt.Sprintf("⏰ <b>Qarz muddati keldi!</b>\n\n%s bilan qarz: %s", counterparty, amount)
	}
	return fmt.Sprintf("⏰ 30 daqiqadan so'ng qarz muddati: %s bilan, %s", counterparty, amount)
}

// reminderText renders a generic reminder notification.
func reminderText(r db.Reminder, final bool) string {
	if final {
		return fmt.Sprintf("⏰ <b>Eslatma:</b> %s", r.Title)
	}
	return fmt.Sprintf("⏰ 30 daqiqadan so'ng: %s", r.Title)
}
