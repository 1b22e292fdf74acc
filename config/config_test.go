package config

import (
	"testing"

	"github.com/aceplay/aceplay/filesystem"
	"github.com/aceplay/aceplay/key"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Config Setup", t, func() {
		Convey("Should initialize without error", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Should have default values populated", func() {
			_ = Setup()
			for name := range Default {
				So(viper.Get(name), ShouldNotBeNil)
			}
			So(viper.GetString(key.CatalogSchema), ShouldEqual, "flat")
			So(viper.GetDuration(key.CatalogRefreshInterval).Minutes(), ShouldEqual, 10)
		})

		Convey("Every defined key should be registered", func() {
			So(len(Default), ShouldEqual, key.DefinedFieldsCount)
		})

		Convey("EnvKeyReplacer should convert dots to underscores", func() {
			So(EnvKeyReplacer.Replace("catalog.refresh_interval"), ShouldEqual, "catalog_refresh_interval")
		})
	})
}

func TestField(t *testing.T) {
	Convey("Given the server address field", t, func() {
		field := Default[key.ServerAddress]

		Convey("Env should carry the application prefix", func() {
			So(field.Env(), ShouldEqual, "ACEPLAY_SERVER_ADDRESS")
		})

		Convey("Pretty should mention the key", func() {
			So(field.Pretty(), ShouldContainSubstring, key.ServerAddress)
		})
	})
}
