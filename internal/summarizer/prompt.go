package summarizer

const chunkPrompt = `Please provide a summary of the following text and do not lose any analytical data.
Begin the summary with a title heading in markdown.

%s`

const (
	msgNoTranscript  = "No transcript to summarize."
	msgNoSummaries   = "Could not generate chunk summaries."
	truncationMarker = "..."
	summarySeparator = "\n\n"
)
