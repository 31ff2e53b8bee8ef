// SPDX-FileCopyrightText: 2020-present Open Networking Foundation <info@opennetworking.org>
//
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"bytes"
	"time"

	"github.com/google/uuid"
	"github.com/onosproject/onos-lib-go/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// SetDefaults registers the values used when the configuration omits a key.
// They reproduce the ParkingLotCars run: 60 GHz carrier, 400 MHz, 4x4 eNB and 1x4 UE arrays.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scenario", "ParkingLotCars")
	v.SetDefault("simTime", 1*time.Second)
	v.SetDefault("timeStep", 5*time.Millisecond)
	v.SetDefault("txPower", 30.0)
	v.SetDefault("noiseFigure", 9.0)
	v.SetDefault("bandwidth", 400e6)
	v.SetDefault("numBins", 72)
	v.SetDefault("frequency", 60e9)
	v.SetDefault("enbAntenna.rows", 4)
	v.SetDefault("enbAntenna.columns", 4)
	v.SetDefault("enbAntenna.element", "3gpp")
	v.SetDefault("ueAntenna.rows", 1)
	v.SetDefault("ueAntenna.columns", 4)
	v.SetDefault("ueAntenna.element", "isotropic")
	v.SetDefault("cbUpdatePeriod", 1*time.Millisecond)
	v.SetDefault("outputDir", ".")
	v.SetDefault("logLevel", "info")
	v.SetDefault("redis.port", "6379")
}

// LoadConfig loads the named configuration from the usual locations.
func LoadConfig(m *Model, configName string) error {
	v := viper.New()
	v.SetConfigName(configName)
	v.AddConfigPath("/etc/ran-beam-sampler/")
	v.AddConfigPath(".")
	v.AddConfigPath("./pkg/model/")
	SetDefaults(v)
	if err := v.ReadInConfig(); err != nil {
		return errors.NewNotFound("unable to read configuration %s: %v", configName, err)
	}
	return Unmarshal(v, m)
}

// LoadConfigFromBytes loads a YAML configuration held in memory.
func LoadConfigFromBytes(m *Model, data []byte) error {
	v := viper.New()
	v.SetConfigType("yaml")
	SetDefaults(v)
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return errors.NewInvalid("unable to parse configuration: %v", err)
	}
	return Unmarshal(v, m)
}

// Unmarshal decodes v into m, fills the job ID and validates the result.
func Unmarshal(v *viper.Viper, m *Model) error {
	if err := v.Unmarshal(m); err != nil {
		return errors.NewInvalid("unable to decode configuration: %v", err)
	}
	if m.JobID == "" {
		m.JobID = uuid.NewString()
		log.Infof("No jobID configured, using %s", m.JobID)
	}
	return m.Validate()
}
