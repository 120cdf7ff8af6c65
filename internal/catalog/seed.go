package catalog

const (
	commentAvatar = "/placeholder.svg?height=32&width=32"
	channelAvatar = "/placeholder.svg?height=40&width=40"
	sampleMedia1  = "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_1mb.mp4"
	sampleMedia2  = "https://sample-videos.com/zip/10/mp4/SampleVideo_1280x720_2mb.mp4"
)

// DemoAuthor is the author label given to comments written in the client.
const DemoAuthor = "Demo User"

// DemoAvatar is the avatar given to comments written in the client.
const DemoAvatar = commentAvatar

var demoFeed = []Video{
	{ID: "1", Title: "Building a Full-Stack App with Next.js and Python", Thumbnail: "/nextjs-python-tutorial.png", Duration: "15:42", Views: "125K", UploadDate: "2 days ago", Channel: Channel{Name: "TechTutorials", Avatar: "/tech-channel-avatar.png"}},
	{ID: "2", Title: "Python Flask REST API Tutorial", Thumbnail: "/python-flask-api-tutorial.png", Duration: "22:15", Views: "89K", UploadDate: "5 days ago", Channel: Channel{Name: "CodeMaster", Avatar: "/code-master-avatar.png"}},
	{ID: "3", Title: "React Hooks Deep Dive", Thumbnail: "/react-hooks-tutorial.png", Duration: "18:30", Views: "67K", UploadDate: "1 week ago", Channel: Channel{Name: "ReactPro", Avatar: "/react-pro-avatar.png"}},
	{ID: "4", Title: "Database Design Fundamentals", Thumbnail: "/database-design-tutorial.png", Duration: "25:18", Views: "156K", UploadDate: "3 days ago", Channel: Channel{Name: "DataScience Hub", Avatar: "/data-science-avatar.png"}},
	{ID: "5", Title: "JavaScript ES6+ Features Explained", Thumbnail: "/javascript-es6-tutorial.png", Duration: "19:45", Views: "203K", UploadDate: "1 day ago", Channel: Channel{Name: "JS Mastery", Avatar: "/js-channel-avatar.png"}},
	{ID: "6", Title: "CSS Grid vs Flexbox - Complete Guide", Thumbnail: "/css-grid-flexbox-tutorial.png", Duration: "16:33", Views: "178K", UploadDate: "4 days ago", Channel: Channel{Name: "CSS Pro", Avatar: "/css-channel-avatar.png"}},
}

var demoDetails = map[string]Video{
	"1": {
		ID:          "1",
		Title:       "Building a Full-Stack App with Next.js and Python",
		Description: "Learn how to create a modern web application using Next.js for the frontend and Python Flask for the backend API. This comprehensive tutorial covers setup, development, and deployment. You'll learn how to integrate React components with Flask APIs, handle CORS, manage state, and create a seamless full-stack experience.",
		VideoURL:    sampleMedia1,
		Views:       "125K",
		UploadDate:  "2 days ago",
		Channel:     Channel{Name: "TechTutorials", Avatar: "/tech-channel-avatar.png", Subscribers: "250K"},
	},
	"2": {
		ID:          "2",
		Title:       "Python Flask REST API Tutorial",
		Description: "Complete guide to building REST APIs with Python Flask, including authentication, database integration, and best practices for scalable applications. Learn how to structure your Flask applications, handle errors gracefully, and implement proper API design patterns.",
		VideoURL:    sampleMedia2,
		Views:       "89K",
		UploadDate:  "5 days ago",
		Channel:     Channel{Name: "CodeMaster", Avatar: "/code-master-avatar.png", Subscribers: "180K"},
	},
	"3": {
		ID:          "3",
		Title:       "React Hooks Deep Dive",
		Description: "Understanding React Hooks with practical examples and best practices for modern React development. Covers useState, useEffect, custom hooks and more. Perfect for developers looking to master functional components and modern React patterns.",
		VideoURL:    sampleMedia1,
		Views:       "67K",
		UploadDate:  "1 week ago",
		Channel:     Channel{Name: "ReactPro", Avatar: "/react-pro-avatar.png", Subscribers: "95K"},
	},
}

var demoComments = map[string][]Comment{
	"1": {
		{ID: "c1", Author: "DevEnthusiast", Avatar: commentAvatar, Content: "Great tutorial! Really helped me understand the integration between Next.js and Python. The step-by-step approach is perfect.", Timestamp: "2 hours ago", Likes: 15},
		{ID: "c2", Author: "CodeNewbie", Avatar: commentAvatar, Content: "Can you make a follow-up video about deployment? I'd love to see how to deploy this to production.", Timestamp: "5 hours ago", Likes: 8},
		{ID: "c3", Author: "FullStackDev", Avatar: commentAvatar, Content: "This is exactly what I was looking for! The Flask integration is so clean.", Timestamp: "1 day ago", Likes: 23},
	},
	"2": {
		{ID: "c4", Author: "PythonLover", Avatar: commentAvatar, Content: "Flask is such a great framework for APIs. Thanks for the detailed explanation!", Timestamp: "3 hours ago", Likes: 12},
	},
}

var library = []Video{
	{ID: "1", Title: "Building a Full-Stack App with Next.js and Python", Description: "Learn how to create a modern web application using Next.js for the frontend and Python Flask for the backend API. This comprehensive tutorial covers setup, development, and deployment.", Duration: "15:42", Views: "125K", UploadDate: "2 days ago", Channel: Channel{Name: "TechTutorials", Subscribers: "250K"}, VideoURL: sampleMedia1},
	{ID: "2", Title: "Python Flask REST API Tutorial", Description: "Complete guide to building REST APIs with Python Flask, including authentication, database integration, and best practices for scalable applications.", Duration: "22:15", Views: "89K", UploadDate: "5 days ago", Channel: Channel{Name: "CodeMaster", Subscribers: "180K"}, VideoURL: sampleMedia2},
	{ID: "3", Title: "React Hooks Deep Dive", Description: "Understanding React Hooks with practical examples and best practices for modern React development. Covers useState, useEffect, custom hooks and more.", Duration: "18:30", Views: "67K", UploadDate: "1 week ago", Channel: Channel{Name: "ReactPro", Subscribers: "95K"}, VideoURL: sampleMedia1},
	{ID: "4", Title: "Database Design Fundamentals", Description: "Learn the basics of database design, normalization, and best practices for scalable applications. Perfect for beginners and intermediate developers.", Duration: "25:18", Views: "156K", UploadDate: "3 days ago", Channel: Channel{Name: "DataScience Hub", Subscribers: "320K"}, VideoURL: sampleMedia2},
	{ID: "5", Title: "JavaScript ES6+ Features Explained", Description: "Modern JavaScript features including arrow functions, destructuring, async/await, and more. Essential for every web developer.", Duration: "19:45", Views: "203K", UploadDate: "1 day ago", Channel: Channel{Name: "JS Mastery", Subscribers: "450K"}, VideoURL: sampleMedia1},
}

// DemoFeed returns the home feed shown before any remote source is reached.
func DemoFeed() []Video {
	return Clone(demoFeed)
}

// DemoVideo returns the demo detail record for id. Unknown ids get a
// placeholder record carrying that id.
func DemoVideo(id string) Video {
	if v, ok := demoDetails[id]; ok {
		return v
	}
	return Video{
		ID:          id,
		Title:       "Sample Video",
		Description: "This is a sample video in demo mode. Start the API server to see real video data.",
		VideoURL:    sampleMedia1,
		Views:       "1K",
		UploadDate:  "1 day ago",
		Channel:     Channel{Name: "Demo Channel", Avatar: channelAvatar, Subscribers: "10K"},
	}
}

// DemoComments returns the demo comments for a video, or an empty slice.
func DemoComments(videoID string) []Comment {
	return Clone(demoComments[videoID])
}

// Library returns the initial contents of the demo API server.
func Library() []Video {
	out := Clone(library)
	for i := range out {
		out[i].Thumbnail = "/placeholder.svg?height=180&width=320"
		out[i].Channel.Avatar = channelAvatar
	}
	return out
}

// LibraryComments returns the initial comments held by the demo API server,
// keyed by video id.
func LibraryComments() map[string][]Comment {
	out := make(map[string][]Comment, len(demoComments))
	for id, comments := range demoComments {
		out[id] = Clone(comments)
	}
	return out
}
