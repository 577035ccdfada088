package config

const (
	defaultArchiveDir                = "~/Podcasts"
	defaultLogDir                    = "~/.local/share/chlog/logs"
	defaultLogFormat                 = "console"
	defaultLogLevel                  = "info"
	defaultSpeechModel               = "whisper-1"
	defaultSpeechLanguage            = "en"
	defaultSpeechTimeoutSeconds      = 600
	defaultSummarizerModel           = "gpt-4o-mini"
	defaultMaxChunkTokens            = 2000
	defaultSummarizerTimeoutSeconds  = 120
	defaultTranscriptsBaseURL        = "https://raw.githubusercontent.com/thechangelog/transcripts/refs/heads/master"
	defaultNotesBaseURL              = "https://raw.githubusercontent.com/thechangelog/show-notes/refs/heads/master"
	defaultTranscriptsTimeoutSeconds = 30
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ArchiveDir: defaultArchiveDir,
			LogDir:     defaultLogDir,
		},
		Speech: Speech{
			Model:          defaultSpeechModel,
			Language:       defaultSpeechLanguage,
			TimeoutSeconds: defaultSpeechTimeoutSeconds,
		},
		Summarizer: Summarizer{
			Model:          defaultSummarizerModel,
			MaxChunkTokens: defaultMaxChunkTokens,
			TimeoutSeconds: defaultSummarizerTimeoutSeconds,
		},
		Transcripts: Transcripts{
			TranscriptsBaseURL: defaultTranscriptsBaseURL,
			NotesBaseURL:       defaultNotesBaseURL,
			TimeoutSeconds:     defaultTranscriptsTimeoutSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
