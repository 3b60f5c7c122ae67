package store

// Fixed record keys.
const (
	KeyNumbersProgress    = "numbers-progress"
	KeyEquationsProgress  = "equations-progress"
	KeyEquationsSettings  = "equations-settings"
	KeyNoRepWords         = "norep-words"
	KeyNoRepSentences     = "norep-sentences"
	KeyBookProgress       = "book-progress"
	KeyBookSessionLog     = "book-session-log"
	KeyBookDailySelection = "book-daily-selection"
)

// Keys lists every record key.
var Keys = []string{
	KeyNumbersProgress,
	KeyEquationsProgress,
	KeyEquationsSettings,
	KeyNoRepWords,
	KeyNoRepSentences,
	KeyBookProgress,
	KeyBookSessionLog,
	KeyBookDailySelection,
}
