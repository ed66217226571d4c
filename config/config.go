package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"

	"github.com/voxlab/transcript-eval/benchmark"
)

type Evaluation struct {
	Normalize        bool    `mapstructure:"normalize"`
	MatchSpeakers    bool    `mapstructure:"match_speakers"`
	SpeakerThreshold float64 `mapstructure:"speaker_threshold"`
	WER              bool    `mapstructure:"wer"`
	CPWER            bool    `mapstructure:"cp_wer"`
	DER              bool    `mapstructure:"der"`
}

type Batch struct {
	Workers   int    `mapstructure:"workers"`
	OutputDir string `mapstructure:"output_dir"`
	Precision int    `mapstructure:"precision"`
}

type Root struct {
	LogLevel   string     `mapstructure:"log_level"`
	Evaluation Evaluation `mapstructure:"evaluation"`
	Batch      Batch      `mapstructure:"batch"`
}

// Load reads eval.yaml from the working directory or ./config, with
// EVAL_-prefixed environment overrides. A missing file is fine; defaults
// cover every knob.
func Load() (*Root, error) {
	v := viper.New()
	v.SetConfigName("eval")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("config")
	v.SetEnvPrefix("EVAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "info")
	v.SetDefault("evaluation.normalize", true)
	v.SetDefault("evaluation.match_speakers", true)
	v.SetDefault("evaluation.speaker_threshold", 80.0)
	v.SetDefault("evaluation.wer", true)
	v.SetDefault("evaluation.cp_wer", true)
	v.SetDefault("evaluation.der", true)
	v.SetDefault("batch.workers", 4)
	v.SetDefault("batch.output_dir", "outputs")
	v.SetDefault("batch.precision", 4)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Options translates the evaluation section into benchmark options.
func (r *Root) Options() benchmark.Options {
	return benchmark.Options{
		Normalize:        r.Evaluation.Normalize,
		MatchSpeakers:    r.Evaluation.MatchSpeakers,
		SpeakerThreshold: r.Evaluation.SpeakerThreshold,
		WER:              r.Evaluation.WER,
		CPWER:            r.Evaluation.CPWER,
		DER:              r.Evaluation.DER,
	}
}
