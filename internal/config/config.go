package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir   string `yaml:"data_dir"`
		UserAgent string `yaml:"user_agent"`
	} `yaml:"app"`

	Platform struct {
		Host string `yaml:"host"`
		// FeedURL is a printf template taking the slug, e.g.
		// https://api.ashbyhq.com/posting-api/job-board/%s
		FeedURL string `yaml:"feed_url"`
	} `yaml:"platform"`

	Search struct {
		BaseURL  string `yaml:"base_url"`
		PageSize int    `yaml:"page_size"`
		// MaxStart is the API's documented per-query result ceiling.
		MaxStart int `yaml:"max_start"`

		// Credentials come from the environment, never the yaml file.
		APIKey   string `yaml:"-"`
		EngineID string `yaml:"-"`
	} `yaml:"search"`

	Pacing struct {
		SearchPerSec float64 `yaml:"search_per_sec"`
		FetchPerSec  float64 `yaml:"fetch_per_sec"`
		Burst        int     `yaml:"burst"`
	} `yaml:"pacing"`

	Output struct {
		RegistryFile    string `yaml:"registry_file"`
		ZeroJobsFile    string `yaml:"zero_jobs_file"`
		LowJobsFile     string `yaml:"low_jobs_file"`
		LowJobThreshold int    `yaml:"low_job_threshold"`
		ProgressEvery   int    `yaml:"progress_every"`
	} `yaml:"output"`
}

func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.App.UserAgent = "Boardwatch/1.0 (+local)"
	cfg.Platform.Host = "jobs.ashbyhq.com"
	cfg.Platform.FeedURL = "https://api.ashbyhq.com/posting-api/job-board/%s"
	cfg.Search.BaseURL = "https://www.googleapis.com/customsearch/v1"
	cfg.Search.PageSize = 10
	cfg.Search.MaxStart = 100
	cfg.Pacing.SearchPerSec = 1
	cfg.Pacing.FetchPerSec = 2
	cfg.Pacing.Burst = 1
	cfg.Output.RegistryFile = "companies.csv"
	cfg.Output.ZeroJobsFile = "companies_zero_jobs.csv"
	cfg.Output.LowJobsFile = "companies_low_jobs.csv"
	cfg.Output.LowJobThreshold = 5
	cfg.Output.ProgressEvery = 50
	return cfg
}

func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}
