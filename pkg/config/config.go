package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Progression struct {
		MessageXP       int `yaml:"message_xp"`
		GainCooldownSec int `yaml:"gain_cooldown_seconds"`
		DailyReward     int `yaml:"daily_reward"`
		DailyWindowHrs  int `yaml:"daily_window_hours"`
		LevelCap        int `yaml:"level_cap"`
	} `yaml:"progression"`
	Bond struct {
		Increment     int `yaml:"increment"`
		DecayAfterHrs int `yaml:"decay_after_hours"`
		DecayAmount   int `yaml:"decay_amount"`
	} `yaml:"bond"`
	Gates       map[string]int `yaml:"gates"`
	Quests      []QuestConfig  `yaml:"quests"`
	Maintenance struct {
		SweepIntervalHours float64 `yaml:"sweep_interval_hours"`
	} `yaml:"maintenance"`
}

// QuestConfig is one catalog entry: the keyword triggers auto-completion when
// it appears in a message.
type QuestConfig struct {
	ID      string `yaml:"id"`
	Text    string `yaml:"text"`
	XP      int    `yaml:"xp"`
	Keyword string `yaml:"keyword"`
}

// Default returns the shipped tunables, used when no config file is present.
func Default() *Config {
	config := &Config{}
	config.Progression.MessageXP = 1
	config.Progression.GainCooldownSec = 30
	config.Progression.DailyReward = 20
	config.Progression.DailyWindowHrs = 24
	config.Progression.LevelCap = 50
	config.Bond.Increment = 1
	config.Bond.DecayAfterHrs = 48
	config.Bond.DecayAmount = 5
	config.Gates = map[string]int{
		"voice":    2,
		"images":   3,
		"romantic": 5,
	}
	config.Quests = []QuestConfig{
		{ID: "daily_greet", Text: "Say 'good morning'", XP: 10, Keyword: "good morning"},
		{ID: "share_thought", Text: "Tell Luna one thing on your mind", XP: 15, Keyword: "I feel"},
	}
	config.Maintenance.SweepIntervalHours = 6
	return config
}

func LoadConfig(path string) (*Config, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(file, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
