package config

import (
	"ttreviews/model"

	"github.com/spf13/viper"
)

var Cfg model.Config

func LoadConfig() (err error) {
	viper.AddConfigPath(".")
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	viper.SetDefault("database.path", "./data/ttreviews.db")
	viper.SetDefault("admin.listen", ":8085")
	viper.SetDefault("review.queue_batch_size", 5)

	err = viper.ReadInConfig()
	if err != nil {
		return
	}

	err = viper.Unmarshal(&Cfg)
	return
}
