// Package academic contains the teaching-side entities of the campus: courses, terms,
// instructors, timetables, exams and the meetings and events around them.
package academic
