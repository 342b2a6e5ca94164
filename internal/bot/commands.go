package bot

// Bot commands. All of them are admin-only.
const (
	CommandStart      = "/start"
	CommandSignal     = "/signal"
	CommandResult     = "/result"
	CommandEndSession = "/endsession"
	CommandEndDay     = "/endday"
	CommandReportWeek = "/reportweek"
	CommandStats      = "/stats"
	CommandMilestone  = "/milestone"
	CommandBroadcast  = "/broadcast"
	CommandManual     = "/manual"
	CommandInfo       = "/info"
)
