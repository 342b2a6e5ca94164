package keyboard

import (
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"
)

// Callback data tokens shared between the keyboards and the router.
const (
	CallbackCancel              = "cancel_op"
	CallbackPairPagePrefix      = "pairs_"
	CallbackHourPrefix          = "hour_"
	CallbackMinutePrefix        = "minute_"
	CallbackDirectionUp         = "direction_up"
	CallbackDirectionDown       = "direction_down"
	CallbackPostSignal          = "post_signal"
	CallbackRestepPairs         = "restep_pairs"
	CallbackRestepTime          = "restep_time"
	CallbackRestepDirection     = "restep_direction"
	CallbackResultImage         = "result_image"
	CallbackSendResult          = "send_result"
	CallbackResultWithStreak    = "result_with_streak"
	CallbackResultWithoutStreak = "result_without_streak"
	CallbackBroadcastConfirm    = "broadcast_confirm"
	CallbackBroadcastCancel     = "broadcast_cancel"
	CallbackMilestonePrefix     = "post_milestone_"
	CallbackManualPrefix        = "manual_"
	CallbackConfirmManualPrefix = "confirm_manual_"
	CallbackInfoPrefix          = "info_"
	CallbackYes                 = "yes"
	CallbackNo                  = "no"
)

// currencyFlags maps an ISO currency code to the flag shown on pair buttons.
var currencyFlags = map[string]string{
	"AED": "🇦🇪", "ARS": "🇦🇷", "AUD": "🇦🇺", "BDT": "🇧🇩", "BHD": "🇧🇭",
	"BRL": "🇧🇷", "CAD": "🇨🇦", "CHF": "🇨🇭", "CLP": "🇨🇱", "CNH": "🇨🇳",
	"CNY": "🇨🇳", "COP": "🇨🇴", "DZD": "🇩🇿", "EGP": "🇪🇬", "EUR": "🇪🇺",
	"GBP": "🇬🇧", "HUF": "🇭🇺", "IDR": "🇮🇩", "INR": "🇮🇳", "JOD": "🇯🇴",
	"JPY": "🇯🇵", "KES": "🇰🇪", "LBP": "🇱🇧", "MAD": "🇲🇦", "MXN": "🇲🇽",
	"MYR": "🇲🇾", "NGN": "🇳🇬", "NOK": "🇳🇴", "NZD": "🇳🇿", "OMR": "🇴🇲",
	"PHP": "🇵🇭", "PKR": "🇵🇰", "QAR": "🇶🇦", "RUB": "🇷🇺", "SAR": "🇸🇦",
	"SGD": "🇸🇬", "THB": "🇹🇭", "TND": "🇹🇳", "TRY": "🇹🇷", "UAH": "🇺🇦",
	"USD": "🇺🇸", "VND": "🇻🇳", "YER": "🇾🇪", "ZAR": "🇿🇦",
}

// pairPages is the OTC pair catalog in its fixed page order. The callback
// data for a pair button is the bare pair string, e.g. "AED/CNY (OTC)".
var pairPages = [][]string{
	{
		"AED/CNY", "AUD/CAD",
		"AUD/CHF", "AUD/NZD",
		"AUD/USD", "BHD/CNY",
		"CAD/CHF", "CAD/JPY",
		"CHF/JPY", "CHF/NOK",
		"EUR/CHF", "EUR/GBP",
		"EUR/HUF", "EUR/JPY",
		"USD/MXN", "USD/IDR",
	},
	{
		"EUR/NZD", "EUR/RUB",
		"EUR/TRY", "EUR/USD",
		"GBP/AUD", "GBP/JPY",
		"GBP/USD", "NZD/USD",
		"OMR/CNY", "SAR/CNY",
		"USD/ARS", "USD/BDT",
		"USD/CNH", "USD/EGP",
	},
	{
		"USD/MYR", "USD/PHP",
		"USD/RUB", "USD/THB",
		"YER/USD", "USD/CAD",
		"AUD/JPY", "NZD/JPY",
		"TND/USD", "USD/SGD",
		"USD/COP", "MAD/USD",
		"USD/JPY", "LBP/USD",
	},
	{
		"JOD/CNY", "USD/VND",
		"USD/PKR", "QAR/CNY",
		"USD/CLP", "USD/INR",
		"USD/BRL", "USD/CHF",
		"USD/DZD", "NGN/USD",
		"ZAR/USD", "KES/USD",
		"UAH/USD",
	},
}

// PairPageCount is the number of catalog pages.
func PairPageCount() int {
	return len(pairPages)
}

// PairData returns the callback data for a catalog pair.
func PairData(pair string) string {
	return pair + " (OTC)"
}

// pairLabel renders a pair button label with its currency flags.
func pairLabel(pair string) string {
	base, quote, ok := strings.Cut(pair, "/")
	if !ok {
		return PairData(pair)
	}

	return currencyFlags[base] + " " + base + " / " + quote + " " + currencyFlags[quote] + " (OTC)"
}

// PairLabel resolves the flagged display label for pair callback data. It
// reports false for data outside the catalog.
func PairLabel(data string) (string, bool) {
	pair, _, ok := strings.Cut(data, " (OTC)")
	if !ok {
		return "", false
	}

	for _, page := range pairPages {
		for _, candidate := range page {
			if candidate == pair {
				return pairLabel(pair), true
			}
		}
	}

	return "", false
}

// IsPairData reports whether callback data names a catalog pair.
func IsPairData(data string) bool {
	_, ok := PairLabel(data)
	return ok
}

// Pairs builds one page of the pair catalog. Pages out of range clamp to
// the first page.
func (b *Builder) Pairs(page int) *telebot.ReplyMarkup {
	if page < 0 || page >= len(pairPages) {
		page = 0
	}

	var rows [][]telebot.InlineButton
	row := make([]telebot.InlineButton, 0, 2)
	for _, pair := range pairPages[page] {
		row = append(row, telebot.InlineButton{
			Text: pairLabel(pair),
			Data: PairData(pair),
		})
		if len(row) == 2 {
			rows = append(rows, row)
			row = make([]telebot.InlineButton, 0, 2)
		}
	}

	back := telebot.InlineButton{
		Text: "◀ Back",
		Data: CallbackPairPagePrefix + strconv.Itoa(page-1),
	}
	more := telebot.InlineButton{
		Text: "More Pairs ▶",
		Data: CallbackPairPagePrefix + strconv.Itoa(page+1),
	}

	// The last page folds the back button into its odd trailing row.
	if len(row) == 1 && page > 0 && page == len(pairPages)-1 {
		rows = append(rows, append(row, back))
	} else {
		if len(row) == 1 {
			rows = append(rows, row)
		}

		nav := make([]telebot.InlineButton, 0, 2)
		if page > 0 {
			nav = append(nav, back)
		}
		if page < len(pairPages)-1 {
			nav = append(nav, more)
		}
		if len(nav) > 0 {
			rows = append(rows, nav)
		}
	}

	rows = append(rows, []telebot.InlineButton{{Text: "Cancel Operation", Data: CallbackCancel}})

	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = rows
	return markup
}
