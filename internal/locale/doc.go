// Package locale renders locale-neutral verdict codes as display strings.
//
// English and Arabic are built in. Callers pass any BCP 47 tag (or an
// Accept-Language style list) and get the closest supported catalog;
// anything unsupported falls back to English.
package locale
