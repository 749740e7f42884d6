package constants

// Keys of the backing medium owned by the record store.
const (
	KeyCigars                = "cigars"
	KeyJournalEntries        = "journal_entries"
	KeyPremiumMode           = "premium_mode"
	KeyFreeHumidifierClaimed = "free_humidifier_claimed"
)

// AllKeys lists every key the record store writes, in the order ClearAll removes them.
var AllKeys = []string{
	KeyCigars,
	KeyJournalEntries,
	KeyPremiumMode,
	KeyFreeHumidifierClaimed,
}
