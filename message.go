/*
 * message.go, part of electrolens.
 *
 * Copyright 2024 The electrolens authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package electrolens

import (
	"io"

	log "github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *log.Logger {
	l := log.New()
	l.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	l.SetLevel(log.InfoLevel)
	return l
}

//SuppressMessages silences (or, with false, restores) the warnings and informational
//messages of the package.
func SuppressMessages(suppress bool) {
	if suppress {
		logger.SetLevel(log.PanicLevel)
		return
	}
	logger.SetLevel(log.InfoLevel)
}

//SetMessageOutput sets the destination of the package messages. The default is stderr.
func SetMessageOutput(out io.Writer) {
	logger.SetOutput(out)
}

func messages() *log.Entry {
	return logger.WithField("prefix", "electrolens")
}

func warning(format string, args ...interface{}) {
	messages().Warnf(format, args...)
}

func information(format string, args ...interface{}) {
	messages().Infof(format, args...)
}
