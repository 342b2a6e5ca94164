package domain

// CronJob is one scheduled recurring publication loaded at startup. A job may
// carry several cron expressions; each is registered against the job's own
// IANA timezone.
type CronJob struct {
	ID       int64
	Name     string
	CronID   string
	Schedule []string
	Timezone string
}

// Well-known cron ids that trigger report flows instead of template posts.
const (
	CronSessionEnd = "session_end"
	CronDayEnd     = "day_end"
)

// CronPost is the channel-facing template dispatched when a job fires. Image
// and Video declare the message type; the concrete assets live on disk and
// are resolved by id.
type CronPost struct {
	ID          int64
	Name        string
	MessageID   string
	Text        string
	Image       bool
	Video       bool
	ReplyMarkup []byte
}
