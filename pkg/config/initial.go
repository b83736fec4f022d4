package config

type Initial struct {
	SeedDemoData bool `split_words:"true" default:"false"`
}
