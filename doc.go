// Package fogbugz provides a Go client for FogBugz-style issue tracker
// JSON APIs.
//
// The search query composer is the heart of the package: it builds
// filter strings clause by clause with the tracker's quoting and
// escaping rules applied automatically.
//
//	q := fogbugz.NewSearch().
//	    Project("Sample Project").
//	    Status("Active").
//	    Or(func(or *fogbugz.OrBuilder) *fogbugz.OrBuilder {
//	        return or.AssignedTo("Alice").AssignedTo("Bob")
//	    }).
//	    OrderBy("Priority", false)
//
// Composed queries run through the client:
//
//	client, _ := fogbugz.New("https://example.fogbugz.com", apiKey)
//	cases, _ := client.Search().Compose(q).Max(50).Do(ctx)
//
// Case lifecycle, time tracking, reports and installation metadata are
// exposed as per-concern services: Cases, TimeTracking, Reports, Org.
package fogbugz
