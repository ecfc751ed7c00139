package config

const (
	defaultInputDir = "~/.local/share/nazar/input"
	defaultDataDir  = "~/.local/share/nazar/data"
	defaultLogDir   = "~/.local/share/nazar/logs"

	defaultInferenceBaseURL       = "https://api-inference.huggingface.co"
	defaultInferenceTimeout       = 60
	defaultPersianSentimentModel  = "HooshvareLab/bert-fa-base-uncased-clf-persiannews"
	defaultTranslationModel       = "persiannlp/mt5-base-parsinlu-opus-translation_fa_en"
	defaultEnglishEmotionModel    = "j-hartmann/emotion-english-distilroberta-base"
	defaultIronyModel             = "cardiffnlp/twitter-roberta-base-irony"
	defaultMaxCommentChars        = 500
	defaultCommentsPerVideo       = 2000
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			InputDir: defaultInputDir,
			DataDir:  defaultDataDir,
			LogDir:   defaultLogDir,
		},
		Inference: Inference{
			BaseURL:               defaultInferenceBaseURL,
			PersianSentimentModel: defaultPersianSentimentModel,
			TranslationModel:      defaultTranslationModel,
			EnglishEmotionModel:   defaultEnglishEmotionModel,
			IronyModel:            defaultIronyModel,
			TimeoutSeconds:        defaultInferenceTimeout,
		},
		Analysis: Analysis{
			MaxCommentChars:  defaultMaxCommentChars,
			CommentsPerVideo: defaultCommentsPerVideo,
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
