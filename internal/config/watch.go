package config

import (
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watch re-reads the config file whenever it changes on disk and passes the
// result to onChange. Invalid configurations are passed to onError and the
// previous configuration stays in effect. Only settings that can change at
// runtime (currently the log level) are expected to be applied by callers.
func Watch(v *viper.Viper, onChange func(*Config), onError func(error)) {
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := LoadFrom(v)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
