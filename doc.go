/*
Package weeklock freezes weekly records in a set of Smartsheet sheets once their
reporting period closes.

weeklock can be used from the command line but is really intended to be run from a
cron job at the end of each week. It scans every configured sheet for unlocked rows
whose week-ending date falls on or before the upcoming Sunday, locks those rows in
batches and writes a CSV audit log of every row locked.

weeklock supports the following commands:

  - run, to scan the configured sheets and lock all rows whose week has ended
  - version, to display the application version
*/
package weeklock
