package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
)

// firestore refuses write batches above this size
const maxBatchWrites = 500

type FirestoreStore struct {
	Client       *firestore.Client
	MaxInSetSize int
}

func NewFirestoreStore(client *firestore.Client, maxInSetSize int) *FirestoreStore {
	if maxInSetSize <= 0 {
		maxInSetSize = DefaultMaxInSetSize
	}
	return &FirestoreStore{
		Client:       client,
		MaxInSetSize: maxInSetSize,
	}
}

func (s *FirestoreStore) add(ctx context.Context, collection string, data interface{}) (string, error) {
	ref := s.Client.Collection(collection).NewDoc()
	if _, err := ref.Set(ctx, data); err != nil {
		return "", errors.Wrapf(err, "failed to write into %s", collection)
	}
	return ref.ID, nil
}

func (s *FirestoreStore) each(ctx context.Context, query firestore.Query, fn func(doc *firestore.DocumentSnapshot) error) error {
	iter := query.Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
}

func (s *FirestoreStore) getAll(ctx context.Context, collection string, ids []string, fn func(doc *firestore.DocumentSnapshot) error) error {
	if err := checkInSetSize(ids, s.MaxInSetSize); err != nil {
		return err
	}

	col := s.Client.Collection(collection)
	refs := make([]*firestore.DocumentRef, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		refs = append(refs, col.Doc(id))
	}
	if len(refs) == 0 {
		return nil
	}

	docs, err := s.Client.GetAll(ctx, refs)
	if err != nil {
		return errors.Wrapf(err, "failed to get documents from %s", collection)
	}
	for _, doc := range docs {
		if !doc.Exists() {
			continue
		}
		if err := fn(doc); err != nil {
			return err
		}
	}
	return nil
}

func (s *FirestoreStore) AddChild(ctx context.Context, child Child) (Child, error) {
	id, err := s.add(ctx, ChildrenCollection, child)
	if err != nil {
		return Child{}, err
	}
	child.Id = id
	return child, nil
}

func (s *FirestoreStore) ListChildren(ctx context.Context) ([]Child, error) {
	children := []Child{}
	err := s.each(ctx, s.Client.Collection(ChildrenCollection).Query, func(doc *firestore.DocumentSnapshot) error {
		child, err := childFromSnapshot(doc)
		if err != nil {
			return err
		}
		children = append(children, child)
		return nil
	})
	return children, err
}

func (s *FirestoreStore) GetChildrenByIds(ctx context.Context, ids []string) ([]Child, error) {
	children := []Child{}
	err := s.getAll(ctx, ChildrenCollection, ids, func(doc *firestore.DocumentSnapshot) error {
		child, err := childFromSnapshot(doc)
		if err != nil {
			return err
		}
		children = append(children, child)
		return nil
	})
	return children, err
}

func (s *FirestoreStore) AddStaff(ctx context.Context, staff Staff) (Staff, error) {
	id, err := s.add(ctx, StaffCollection, staff)
	if err != nil {
		return Staff{}, err
	}
	staff.Id = id
	return staff, nil
}

func (s *FirestoreStore) ListStaff(ctx context.Context) ([]Staff, error) {
	staff := []Staff{}
	err := s.each(ctx, s.Client.Collection(StaffCollection).Query, func(doc *firestore.DocumentSnapshot) error {
		member, err := staffFromSnapshot(doc)
		if err != nil {
			return err
		}
		staff = append(staff, member)
		return nil
	})
	return staff, err
}

func (s *FirestoreStore) GetStaffByIds(ctx context.Context, ids []string) ([]Staff, error) {
	staff := []Staff{}
	err := s.getAll(ctx, StaffCollection, ids, func(doc *firestore.DocumentSnapshot) error {
		member, err := staffFromSnapshot(doc)
		if err != nil {
			return err
		}
		staff = append(staff, member)
		return nil
	})
	return staff, err
}

func (s *FirestoreStore) AddUser(ctx context.Context, user User) (User, error) {
	id, err := s.add(ctx, UsersCollection, user)
	if err != nil {
		return User{}, err
	}
	user.Id = id
	return user, nil
}

func (s *FirestoreStore) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	err := s.each(ctx, s.Client.Collection(UsersCollection).Query, func(doc *firestore.DocumentSnapshot) error {
		user, err := userFromSnapshot(doc)
		if err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	return users, err
}

func (s *FirestoreStore) GetUsersByIds(ctx context.Context, ids []string) ([]User, error) {
	users := []User{}
	err := s.getAll(ctx, UsersCollection, ids, func(doc *firestore.DocumentSnapshot) error {
		user, err := userFromSnapshot(doc)
		if err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	return users, err
}

func (s *FirestoreStore) AddDailyLogEntry(ctx context.Context, entry DailyLogEntry) (DailyLogEntry, error) {
	id, err := s.add(ctx, DailyLogEntriesCollection, entry)
	if err != nil {
		return DailyLogEntry{}, err
	}
	entry.Id = id
	return entry, nil
}

func (s *FirestoreStore) ListDailyLogEntries(ctx context.Context, options EntrySearchOptions) ([]DailyLogEntry, error) {
	query, filtered := s.entryQuery(DailyLogEntriesCollection, options, "childId", options.ChildIds, "staffId", options.StaffIds)

	entries := []DailyLogEntry{}
	err := s.each(ctx, query, func(doc *firestore.DocumentSnapshot) error {
		entry := DailyLogEntry{}
		if err := doc.DataTo(&entry); err != nil {
			return errors.Wrapf(err, "failed to decode daily log entry %s", doc.Ref.ID)
		}
		if filtered != "staffId" && len(options.StaffIds) > 0 && !contains(options.StaffIds, entry.StaffId) {
			return nil
		}
		entry.Id = doc.Ref.ID
		entries = append(entries, entry)
		return nil
	})
	return entries, err
}

func (s *FirestoreStore) AddHealthRecordEntry(ctx context.Context, entry HealthRecordEntry) (HealthRecordEntry, error) {
	id, err := s.add(ctx, HealthRecordEntriesCollection, entry)
	if err != nil {
		return HealthRecordEntry{}, err
	}
	entry.Id = id
	return entry, nil
}

func (s *FirestoreStore) ListHealthRecordEntries(ctx context.Context, options EntrySearchOptions) ([]HealthRecordEntry, error) {
	query, filtered := s.entryQuery(HealthRecordEntriesCollection, options, "childId", options.ChildIds, "recordedByUserId", options.UserIds)

	entries := []HealthRecordEntry{}
	err := s.each(ctx, query, func(doc *firestore.DocumentSnapshot) error {
		entry := HealthRecordEntry{}
		if err := doc.DataTo(&entry); err != nil {
			return errors.Wrapf(err, "failed to decode health record entry %s", doc.Ref.ID)
		}
		if filtered != "recordedByUserId" && len(options.UserIds) > 0 && !contains(options.UserIds, entry.RecordedByUserId) {
			return nil
		}
		entry.Id = doc.Ref.ID
		entries = append(entries, entry)
		return nil
	})
	return entries, err
}

// entryQuery builds the timestamp range query. Firestore accepts a single
// "in" clause per query: the child set is applied when present, otherwise
// the other set. It returns the field filtered in the query ("" if none), the
// caller filters the remaining set itself.
func (s *FirestoreStore) entryQuery(collection string, options EntrySearchOptions, childField string, childIds []string, otherField string, otherIds []string) (firestore.Query, string) {
	query := s.Client.Collection(collection).
		Where("timestamp", ">=", options.From).
		Where("timestamp", "<=", options.To).
		OrderBy("timestamp", firestore.Asc)

	switch {
	case len(childIds) > 0:
		return query.Where(childField, "in", childIds), childField
	case len(otherIds) > 0:
		return query.Where(otherField, "in", otherIds), otherField
	}
	return query, ""
}

func (s *FirestoreStore) ClearCollection(ctx context.Context, collection string) error {
	if !contains(Collections, collection) {
		return errors.Wrap(ErrUnknownCollection, collection)
	}

	var refs []*firestore.DocumentRef
	err := s.each(ctx, s.Client.Collection(collection).Query, func(doc *firestore.DocumentSnapshot) error {
		refs = append(refs, doc.Ref)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "failed to list %s", collection)
	}

	for start := 0; start < len(refs); start += maxBatchWrites {
		end := start + maxBatchWrites
		if end > len(refs) {
			end = len(refs)
		}
		batch := s.Client.Batch()
		for _, ref := range refs[start:end] {
			batch.Delete(ref)
		}
		if _, err := batch.Commit(ctx); err != nil {
			return errors.Wrapf(err, "failed to clear %s", collection)
		}
	}
	return nil
}

func childFromSnapshot(doc *firestore.DocumentSnapshot) (Child, error) {
	child := Child{}
	if err := doc.DataTo(&child); err != nil {
		return Child{}, errors.Wrapf(err, "failed to decode child %s", doc.Ref.ID)
	}
	child.Id = doc.Ref.ID
	return child, nil
}

func staffFromSnapshot(doc *firestore.DocumentSnapshot) (Staff, error) {
	staff := Staff{}
	if err := doc.DataTo(&staff); err != nil {
		return Staff{}, errors.Wrapf(err, "failed to decode staff %s", doc.Ref.ID)
	}
	staff.Id = doc.Ref.ID
	return staff, nil
}

func userFromSnapshot(doc *firestore.DocumentSnapshot) (User, error) {
	user := User{}
	if err := doc.DataTo(&user); err != nil {
		return User{}, errors.Wrapf(err, "failed to decode user %s", doc.Ref.ID)
	}
	user.Id = doc.Ref.ID
	return user, nil
}
