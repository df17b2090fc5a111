package news

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Seed returns the startup news items: six school-wide stories, an
// official post for classrooms 5A and 3B, and a parent-rep post for
// each of the same two classrooms.
func Seed() []NewsItem {
	now := time.Now()

	return []NewsItem{
		// school-wide
		{
			ID:    uuid.New().String(),
			Title: "Principal's Welcome Message",
			Content: "Welcome back to Siskiyou School for the new academic year! We're excited to see " +
				"all our students return and to welcome new faces to our community. Our teachers have " +
				"prepared engaging curricula, and our facilities have been refreshed over the summer. " +
				"Remember, our doors are always open for questions or concerns.",
			Date:       now.Add(-48 * time.Hour),
			Author:     "Dr. Sarah Johnson, Principal",
			Category:   CategoryAnnouncement,
			ImageURL:   null.StringFrom("school_welcome"),
			IsPinned:   true,
			SourceType: SourceOfficial,
		},
		{
			ID:    uuid.New().String(),
			Title: "Fall Sports Tryouts Begin Next Week",
			Content: "Attention all student athletes! Tryouts for fall sports begin next week. Soccer, " +
				"cross country, and volleyball teams are looking for new members. Please make sure to " +
				"have your physical examination forms completed before tryouts. Contact Coach Williams " +
				"for more information.",
			Date:       now.Add(-24 * time.Hour),
			Author:     "Athletic Department",
			Category:   CategorySports,
			ImageURL:   null.StringFrom("sports_tryouts"),
			SourceType: SourceOfficial,
		},
		{
			ID:    uuid.New().String(),
			Title: "New Science Lab Equipment Arrives",
			Content: "Our science department has received new state-of-the-art laboratory equipment, " +
				"including digital microscopes, chemistry apparatus, and interactive physics " +
				"demonstration tools. Special thanks to the Parents Association for their fundraising " +
				"efforts that made this possible.",
			Date:       now.Add(-12 * time.Hour),
			Author:     "Dr. Michael Chen, Science Department Head",
			Category:   CategoryAcademic,
			ImageURL:   null.StringFrom("science_lab"),
			SourceType: SourceOfficial,
		},
		{
			ID:    uuid.New().String(),
			Title: "Fall Festival Coming October 15th",
			Content: "Mark your calendars for the annual Fall Festival! This beloved community tradition " +
				"features games, food, music, and the famous pumpkin decorating contest. We need parent " +
				"volunteers to help with booths and activities. All proceeds support the school's arts " +
				"program.",
			Date:       now.Add(-6 * time.Hour),
			Author:     "Events Committee",
			Category:   CategoryEvent,
			ImageURL:   null.StringFrom("fall_festival"),
			IsPinned:   true,
			SourceType: SourceOfficial,
		},
		{
			ID:    uuid.New().String(),
			Title: "Library Book Drive Success",
			Content: "Thank you to everyone who contributed to our library book drive! We collected over " +
				"500 books that will help expand our library's collection. Special recognition goes to " +
				"Ms. Rodriguez's 3rd grade class for bringing in the most donations.",
			Date:       now.Add(-1 * time.Hour),
			Author:     "Ms. Patricia Lee, Librarian",
			Category:   CategoryCommunity,
			ImageURL:   null.StringFrom("library_books"),
			SourceType: SourceOfficial,
		},
		{
			ID:    uuid.New().String(),
			Title: "Math Olympiad Team Forming",
			Content: "Calling all math enthusiasts! The Math Olympiad Team is now accepting applications " +
				"for the new competition season. Students in grades 6-8 who enjoy mathematical " +
				"challenges are encouraged to apply. Applications are due by September 15th.",
			Date:       now,
			Author:     "Mr. Robert Takahashi, Math Coach",
			Category:   CategoryAcademic,
			ImageURL:   null.StringFrom("math_olympiad"),
			SourceType: SourceOfficial,
		},

		// classroom (official)
		{
			ID:    uuid.New().String(),
			Title: "5th Grade Science Project Due Next Week",
			Content: "Dear 5th Grade parents, this is a reminder that the science project on ecosystems " +
				"is due next Friday. Students should prepare both a written report and a visual display. " +
				"Parents are welcome to attend the presentations on Friday afternoon.",
			Date:          now.Add(-10 * time.Hour),
			Author:        "Ms. Jennifer Wilson, 5th Grade Teacher",
			Category:      CategoryClassroom,
			ClassroomID:   null.StringFrom("5A"),
			ClassroomName: null.StringFrom("5th Grade - Ms. Wilson"),
			SourceType:    SourceOfficial,
		},
		{
			ID:    uuid.New().String(),
			Title: "3rd Grade Field Trip Permission Forms",
			Content: "Our field trip to the Natural History Museum is scheduled for October 12th. Please " +
				"complete and return the permission forms by October 5th. We'll need 4-5 parent " +
				"volunteers to help chaperone the trip.",
			Date:          now.Add(-14 * time.Hour),
			Author:        "Ms. Maria Rodriguez, 3rd Grade Teacher",
			Category:      CategoryClassroom,
			ClassroomID:   null.StringFrom("3B"),
			ClassroomName: null.StringFrom("3rd Grade - Ms. Rodriguez"),
			SourceType:    SourceOfficial,
		},

		// parent representative posts
		{
			ID:    uuid.New().String(),
			Title: "5th Grade Parents: Volunteers Needed for Science Fair",
			Content: "Hello 5th grade parents! We need volunteers to help set up for the upcoming " +
				"science fair on October 20th. If you can spare 2-3 hours either before or after school " +
				"on that day, please reach out. Thank you for your support!",
			Date:          now.Add(-2 * time.Hour),
			Author:        "Jane Doe, 5th Grade Parent Representative",
			Category:      CategoryClassroom,
			ClassroomID:   null.StringFrom("5A"),
			ClassroomName: null.StringFrom("5th Grade - Ms. Wilson"),
			SourceType:    SourceParentRep,
		},
		{
			ID:    uuid.New().String(),
			Title: "3rd Grade Halloween Party Planning",
			Content: "Dear 3rd grade parents, we're starting to plan the Halloween class party for " +
				"October 31st. We need volunteers to bring snacks, drinks, crafts, and games. Remember " +
				"that all treats must be nut-free due to allergies in our class.",
			Date:          now.Add(-3 * time.Hour),
			Author:        "Michael Smith, 3rd Grade Parent Representative",
			Category:      CategoryClassroom,
			ClassroomID:   null.StringFrom("3B"),
			ClassroomName: null.StringFrom("3rd Grade - Ms. Rodriguez"),
			SourceType:    SourceParentRep,
		},
	}
}
