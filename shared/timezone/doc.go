// Package timezone pins wall-clock reads to the restaurant's timezone
// (APP_TIMEZONE, an IANA name such as "Asia/Jakarta").
//
// Calendar dates of reservations and time slots are not converted: they are
// stored as DATE columns and compared as YYYY-MM-DD strings.
package timezone
