// Package pendingloanrequests implements the list of loan requests waiting for a librarian's decision.
package pendingloanrequests
